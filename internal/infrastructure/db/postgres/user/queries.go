package user

const (
	userColumns = `id, username, email, password_hash, first_name, last_name, is_active, is_admin, is_superadmin, last_login, created_at, updated_at, deleted_at`

	SelectActiveUsers = `
		SELECT ` + userColumns + `
		FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
	`
	SelectUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	SelectUserByUsername = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1 AND deleted_at IS NULL
	`
	CountUsers = `SELECT count(*) FROM users`
	// Blocks concurrent inserts while still allowing reads, so the bootstrap
	// count and the insert see the same table.
	LockUsers  = `LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE`
	InsertUser = `
		INSERT INTO users (username, email, password_hash, first_name, last_name, is_active, is_admin, is_superadmin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7, now(), now())
		RETURNING ` + userColumns + `
	`
	UpdateProfileByID = `
		UPDATE users
		SET first_name = $1,
		    last_name = $2,
		    username = $3,
		    updated_at = now()
		WHERE id = $4 AND deleted_at IS NULL
	`
	SoftDeleteUserByID = `
		UPDATE users
		SET deleted_at = now(),
		    updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`
	TouchLastLoginByID = `
		UPDATE users
		SET last_login = $1,
		    updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`
)
