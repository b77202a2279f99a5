package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Dialect is the database/sql driver name of a supported relational backend.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "pgx"
	DialectSQLite   Dialect = "sqlite"
)

func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mysql", "":
		return DialectMySQL, nil
	case "pgx", "postgres", "postgresql":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", name)
}

// MySQLDSN builds a DSN from the discrete HBNB_MYSQL_* settings.
func MySQLDSN(user, password, host, dbName string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = host
	if !strings.Contains(host, ":") {
		cfg.Addr = host + ":3306"
	}
	cfg.DBName = dbName
	return cfg.FormatDSN()
}

// OpenDB opens and pings a connection pool for dialect.
func OpenDB(dialect Dialect, dsn string) (*sql.DB, error) {
	if dialect == DialectSQLite && !strings.Contains(dsn, "_pragma=foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxIdleConns(35)
	}
	return db, nil
}

func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (d Dialect) upsert(table string, columns []string) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), marks)

	var sets []string
	for _, c := range columns {
		if c == "id" || c == "created_at" {
			continue
		}
		if d == DialectMySQL {
			sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
		} else {
			sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
		}
	}
	if d == DialectMySQL {
		return q + " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
	}
	return q + " ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func (d Dialect) schema() []string {
	r := strings.NewReplacer(
		"{{ts}}", map[Dialect]string{DialectMySQL: "DATETIME(6)", DialectPostgres: "TIMESTAMP(6)", DialectSQLite: "TEXT"}[d],
		"{{float}}", map[Dialect]string{DialectMySQL: "DOUBLE", DialectPostgres: "DOUBLE PRECISION", DialectSQLite: "REAL"}[d],
		"{{engine}}", map[Dialect]string{DialectMySQL: " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"}[d],
	)
	out := make([]string, len(schemaTemplate))
	for i, stmt := range schemaTemplate {
		out[i] = r.Replace(stmt)
	}
	return out
}

var schemaTemplate = []string{
	`CREATE TABLE IF NOT EXISTS states (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at {{ts}} NOT NULL,
    updated_at {{ts}} NOT NULL,
    name VARCHAR(128) NOT NULL
){{engine}}`,
	`CREATE TABLE IF NOT EXISTS users (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at {{ts}} NOT NULL,
    updated_at {{ts}} NOT NULL,
    email VARCHAR(128) NOT NULL,
    password VARCHAR(128) NOT NULL,
    first_name VARCHAR(128) NOT NULL DEFAULT '',
    last_name VARCHAR(128) NOT NULL DEFAULT ''
){{engine}}`,
	`CREATE TABLE IF NOT EXISTS amenities (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at {{ts}} NOT NULL,
    updated_at {{ts}} NOT NULL,
    name VARCHAR(128) NOT NULL
){{engine}}`,
	`CREATE TABLE IF NOT EXISTS cities (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at {{ts}} NOT NULL,
    updated_at {{ts}} NOT NULL,
    state_id VARCHAR(60) NOT NULL,
    name VARCHAR(128) NOT NULL,
    FOREIGN KEY (state_id) REFERENCES states (id) ON DELETE CASCADE
){{engine}}`,
	`CREATE TABLE IF NOT EXISTS places (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at {{ts}} NOT NULL,
    updated_at {{ts}} NOT NULL,
    city_id VARCHAR(60) NOT NULL,
    user_id VARCHAR(60) NOT NULL,
    name VARCHAR(128) NOT NULL,
    description VARCHAR(1024) NOT NULL DEFAULT '',
    number_rooms INTEGER NOT NULL DEFAULT 0,
    number_bathrooms INTEGER NOT NULL DEFAULT 0,
    max_guest INTEGER NOT NULL DEFAULT 0,
    price_by_night INTEGER NOT NULL DEFAULT 0,
    latitude {{float}} NOT NULL DEFAULT 0,
    longitude {{float}} NOT NULL DEFAULT 0,
    FOREIGN KEY (city_id) REFERENCES cities (id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
){{engine}}`,
	`CREATE TABLE IF NOT EXISTS reviews (
    id VARCHAR(60) NOT NULL PRIMARY KEY,
    created_at {{ts}} NOT NULL,
    updated_at {{ts}} NOT NULL,
    place_id VARCHAR(60) NOT NULL,
    user_id VARCHAR(60) NOT NULL,
    text VARCHAR(1024) NOT NULL,
    FOREIGN KEY (place_id) REFERENCES places (id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
){{engine}}`,
	`CREATE TABLE IF NOT EXISTS place_amenity (
    place_id VARCHAR(60) NOT NULL,
    amenity_id VARCHAR(60) NOT NULL,
    PRIMARY KEY (place_id, amenity_id),
    FOREIGN KEY (place_id) REFERENCES places (id) ON DELETE CASCADE,
    FOREIGN KEY (amenity_id) REFERENCES amenities (id) ON DELETE CASCADE
){{engine}}`,
}

// dropOrder removes link and child tables ahead of their parents.
var dropOrder = []string{"place_amenity", "reviews", "places", "cities", "amenities", "users", "states"}

// isConstraintError reports whether err is a foreign key, unique or
// not-null violation reported by any of the supported drivers.
func isConstraintError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1048, 1062, 1451, 1452:
			return true
		}
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3lib.SQLITE_CONSTRAINT
	}
	return false
}
