package service

import (
	"errors"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrPrincipalNotFound  = errors.New("account not found")
	ErrNotFound           = errors.New("not found")
	ErrReportExists       = errors.New("report already submitted for this date")
	ErrEmployeeIDTaken    = errors.New("employee id already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrImportFile         = errors.New("unreadable import file")
)

const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a unique constraint violation from
// either supported driver.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
