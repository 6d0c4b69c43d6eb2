package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/credvault/credvault/models"
)

const (
	createUser = `INSERT INTO users (username, email, fullname, password_hash)
	VALUES (NULLIF($1, ''), NULLIF($2, ''), $3, $4)
	RETURNING user_id, COALESCE(username, ''), COALESCE(email, ''), fullname, password_hash, COALESCE(refresh_token, ''), created_at, updated_at;`

	findUserByLogin = `SELECT user_id, COALESCE(username, ''), COALESCE(email, ''), fullname, password_hash, COALESCE(refresh_token, ''), created_at, updated_at
	FROM users
	WHERE username = NULLIF($1, '') OR email = NULLIF($2, '');`

	findUserByID = `SELECT user_id, COALESCE(username, ''), COALESCE(email, ''), fullname, password_hash, COALESCE(refresh_token, ''), created_at, updated_at
	FROM users
	WHERE user_id = $1;`

	setRefreshToken = `UPDATE users
	SET refresh_token = $2, updated_at = NOW()
	WHERE user_id = $1;`

	// rotateRefreshToken only touches the row when the persisted token still
	// equals the presented one. Zero affected rows means the session was
	// superseded or revoked in the meantime.
	rotateRefreshToken = `UPDATE users
	SET refresh_token = $3, updated_at = NOW()
	WHERE user_id = $1 AND refresh_token = $2;`

	clearRefreshToken = `UPDATE users
	SET refresh_token = NULL, updated_at = NOW()
	WHERE user_id = $1;`

	updateUserPassword = `UPDATE users
	SET password_hash = $2, updated_at = NOW()
	WHERE user_id = $1;`

	deleteUser = `DELETE FROM users
	WHERE user_id = $1;`

	createPlatform = `INSERT INTO platforms (owner_id, title, website_url)
	VALUES ($1, $2, NULLIF($3, ''))
	RETURNING platform_id, owner_id, title, COALESCE(website_url, ''), created_at, updated_at;`

	findPlatformByTitle = `SELECT platform_id, owner_id, title, COALESCE(website_url, ''), created_at, updated_at
	FROM platforms
	WHERE owner_id = $1 AND title = $2;`

	findPlatformByID = `SELECT platform_id, owner_id, title, COALESCE(website_url, ''), created_at, updated_at
	FROM platforms
	WHERE owner_id = $1 AND platform_id = $2;`

	deletePlatformCredentials = `DELETE FROM credentials
	WHERE owner_id = $1 AND platform_id = $2;`

	deletePlatform = `DELETE FROM platforms
	WHERE owner_id = $1 AND platform_id = $2;`

	createCredential = `INSERT INTO credentials (owner_id, platform_id, username, email, iv, encrypted_password)
	VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)
	RETURNING credential_id, created_at, updated_at;`

	findCredentialByID = `SELECT c.credential_id, c.owner_id, c.platform_id, COALESCE(c.username, ''), COALESCE(c.email, ''), c.iv, c.encrypted_password, p.title, COALESCE(p.website_url, ''), c.created_at, c.updated_at
	FROM credentials c
	JOIN platforms p ON p.platform_id = c.platform_id
	WHERE c.owner_id = $1 AND c.credential_id = $2;`

	updateCredential = `UPDATE credentials
	SET username = NULLIF($3, ''), email = NULLIF($4, ''), iv = $5, encrypted_password = $6, updated_at = NOW()
	WHERE owner_id = $1 AND credential_id = $2;`

	deleteCredential = `DELETE FROM credentials
	WHERE owner_id = $1 AND credential_id = $2;`
)

// psql is the shared squirrel builder configured for PostgreSQL positional
// placeholders ($1, $2, ...).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListPlatformsQuery builds the owner-scoped platform listing, newest
// first, optionally narrowed to an exact normalized title.
func buildListPlatformsQuery(ownerID int64, title string) (string, []any, error) {
	builder := psql.
		Select("platform_id", "owner_id", "title", "COALESCE(website_url, '')", "created_at", "updated_at").
		From("platforms").
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC")

	if title != "" {
		builder = builder.Where(sq.Eq{"title": title})
	}

	return builder.ToSql()
}

// buildListCredentialsQuery builds the owner-scoped credential listing joined
// with the platform registry, newest first. Secret columns (iv,
// encrypted_password) are deliberately excluded from the listing projection.
func buildListCredentialsQuery(ownerID, platformID int64) (string, []any, error) {
	builder := psql.
		Select(
			"c.credential_id",
			"c.owner_id",
			"c.platform_id",
			"COALESCE(c.username, '')",
			"COALESCE(c.email, '')",
			"p.title",
			"COALESCE(p.website_url, '')",
			"c.created_at",
			"c.updated_at",
		).
		From("credentials c").
		Join("platforms p ON p.platform_id = c.platform_id").
		Where(sq.Eq{"c.owner_id": ownerID}).
		OrderBy("c.created_at DESC")

	if platformID != 0 {
		builder = builder.Where(sq.Eq{"c.platform_id": platformID})
	}

	return builder.ToSql()
}

// buildUpdatePlatformQuery builds a dynamic platform update touching only the
// non-empty fields of platform. The RETURNING clause yields the same
// projection as the platform SELECT queries.
func buildUpdatePlatformQuery(platform models.Platform) (string, []any, error) {
	builder := psql.
		Update("platforms").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"owner_id": platform.OwnerID, "platform_id": platform.PlatformID}).
		Suffix(`RETURNING platform_id, owner_id, title, COALESCE(website_url, ''), created_at, updated_at`)

	if platform.Title != "" {
		builder = builder.Set("title", platform.Title)
	}
	if platform.WebsiteURL != "" {
		builder = builder.Set("website_url", platform.WebsiteURL)
	}

	return builder.ToSql()
}

// buildUpdateUserQuery builds a dynamic profile update touching only the
// non-empty fields of user. The RETURNING clause yields the same projection
// as the user SELECT queries.
func buildUpdateUserQuery(user models.User) (string, []any, error) {
	builder := psql.
		Update("users").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_id": user.UserID}).
		Suffix(`RETURNING user_id, COALESCE(username, ''), COALESCE(email, ''), fullname, password_hash, COALESCE(refresh_token, ''), created_at, updated_at`)

	if user.Username != "" {
		builder = builder.Set("username", user.Username)
	}
	if user.Email != "" {
		builder = builder.Set("email", user.Email)
	}
	if user.Fullname != "" {
		builder = builder.Set("fullname", user.Fullname)
	}

	return builder.ToSql()
}
