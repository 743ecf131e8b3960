package rest

const (
	// api
	RouteApi = "/api"

	// auth
	RouteAuth  = RouteApi + "/auth"
	RouteLogin = RouteAuth + "/login"

	RouteUsers = RouteApi + "/users"
	RouteUser  = RouteUsers + "/:id"

	// ops
	RouteHealth  = RouteApi + "/health"
	RouteMetrics = RouteApi + "/metrics"
)
