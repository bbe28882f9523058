package session

// SQL query constants. All SQL lives here; PostgresStore methods reference
// these constants.
const (
	queryCreateSession = `
		INSERT INTO sessions (
			id, access_token, refresh_token, token_type, expires_at, status,
			created_at, updated_at
		) VALUES (
			@id, @access_token, @refresh_token, @token_type, @expires_at, @status,
			now(), now()
		)
		RETURNING created_at, updated_at`

	queryGetSession = `
		SELECT id, access_token, refresh_token, token_type, expires_at, status,
		       created_at, updated_at
		FROM sessions
		WHERE id = $1`

	queryUpdateSession = `
		UPDATE sessions SET
			access_token = @access_token,
			refresh_token = @refresh_token,
			token_type = @token_type,
			expires_at = @expires_at,
			status = @status,
			updated_at = now()
		WHERE id = @id`

	queryDeleteSession = `
		DELETE FROM sessions WHERE id = $1`

	queryDeleteExpiredSessions = `
		DELETE FROM sessions WHERE expires_at < $1`

	queryListExpiringSessions = `
		SELECT id, access_token, refresh_token, token_type, expires_at, status,
		       created_at, updated_at
		FROM sessions
		WHERE status = 'authenticated'
		  AND refresh_token <> ''
		  AND expires_at < $1
		ORDER BY expires_at ASC`

	queryCountSessions = `
		SELECT COUNT(*) FROM sessions WHERE status = 'authenticated'`
)
