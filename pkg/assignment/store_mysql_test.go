package assignment_test

import (
	"os"
	"testing"

	"github.com/gocraft/dbr/v2"
	"github.com/stretchr/testify/assert"

	"github.com/eowork/pmoprototype-sub005/pkg/assignment"
)

// requires a provisioned database with the project_assignment table,
// e.g.: PMO_TEST_MYSQL_DSN="user:pass@tcp(localhost:3306)/pmo_test?parseTime=true"
func TestMySQLStoreRoundtrip(t *testing.T) {
	dsn := os.Getenv("PMO_TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("PMO_TEST_MYSQL_DSN is not set")
	}

	a := assert.New(t)

	conn, err := dbr.Open("mysql", dsn, nil)
	a.NoError(err)
	defer conn.Close()

	_, err = conn.Exec("DELETE FROM project_assignment")
	a.NoError(err)

	s, err := assignment.NewMySQLStore(conn)
	a.NoError(err)
	a.NotNil(s)

	testStoreRoundtrip(t, s)
}

func TestMySQLStoreNilConnection(t *testing.T) {
	a := assert.New(t)

	s, err := assignment.NewMySQLStore(nil)
	a.Equal(assignment.ErrNilStore, err)
	a.Nil(s)
}
