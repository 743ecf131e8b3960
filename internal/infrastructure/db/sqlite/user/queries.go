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
		WHERE id = ?
	`
	SelectUserByUsername = `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = ? AND deleted_at IS NULL
	`
	CountUsers = `SELECT count(*) FROM users`
	InsertUser = `
		INSERT INTO users (username, email, password_hash, first_name, last_name, is_active, is_admin, is_superadmin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?, ?)
	`
	UpdateProfileByID = `
		UPDATE users
		SET first_name = ?,
		    last_name = ?,
		    username = ?,
		    updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	SoftDeleteUserByID = `
		UPDATE users
		SET deleted_at = ?,
		    updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	TouchLastLoginByID = `
		UPDATE users
		SET last_login = ?,
		    updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
)
