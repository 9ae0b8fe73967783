package db_test

import (
	"testing"

	dbpkg "github.com/BruksfildServices01/staffing-scheduler/internal/db"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
	"github.com/BruksfildServices01/staffing-scheduler/internal/testutil"
)

func TestSeedAdminCreatesOnce(t *testing.T) {
	db := testutil.NewDB(t)

	created, err := dbpkg.SeedAdmin(db, "Root", " Root@Example.com ", "s3cret!")
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}

	created, err = dbpkg.SeedAdmin(db, "Root", "root@example.com", "other")
	if err != nil || created {
		t.Fatalf("second seed: created=%v err=%v", created, err)
	}

	var admins []models.User
	db.Where("role = ?", "admin").Find(&admins)
	if len(admins) != 1 || admins[0].Email != "root@example.com" {
		t.Fatalf("unexpected admins: %+v", admins)
	}
}

func TestSeedAdminSkipsWithoutCredentials(t *testing.T) {
	db := testutil.NewDB(t)

	created, err := dbpkg.SeedAdmin(db, "Root", "", "")
	if err != nil || created {
		t.Fatalf("created=%v err=%v", created, err)
	}
}
