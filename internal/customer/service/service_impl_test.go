package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/haroun39/facteur/internal/clock"
	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS customers (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			notes TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	).Error; err != nil {
		t.Fatalf("create customers: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) customerdomain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new snowflake node: %v", err)
	}
	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.Fixed{At: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
	})
}

func TestCreateCustomerTrimsFields(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	notes := "  pays late  "
	record, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		Name:  "  Karim  ",
		Phone: " 0550 ",
		Notes: &notes,
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if record.Name != "Karim" || record.Phone != "0550" {
		t.Errorf("fields not trimmed: %+v", record)
	}
	if record.Notes == nil || *record.Notes != "pays late" {
		t.Errorf("notes not trimmed: %v", record.Notes)
	}
}

func TestCreateCustomerRejectsBlankName(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{Name: "   "})
	if !errors.Is(err, customerdomain.ErrInvalidName) {
		t.Fatalf("expected invalid_customer_name, got %v", err)
	}
}

func TestUpdateCustomerPartial(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	created, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{
		Name:  "Karim",
		Phone: "0550",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	phone := "0661"
	updated, err := svc.Update(context.Background(), created.ID.String(), customerdomain.UpdateCustomerRequest{
		Phone: &phone,
	})
	if err != nil {
		t.Fatalf("update customer: %v", err)
	}
	if updated.Phone != "0661" {
		t.Errorf("phone = %q, want 0661", updated.Phone)
	}
	if updated.Name != "Karim" {
		t.Errorf("name must be untouched, got %q", updated.Name)
	}
}

func TestListCustomersSearch(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	for _, name := range []string{"Karim Benali", "Amina Cherif", "Salah Karimi"} {
		if _, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{Name: name}); err != nil {
			t.Fatalf("create customer %s: %v", name, err)
		}
	}

	resp, err := svc.List(context.Background(), customerdomain.ListCustomerRequest{Query: "karim"})
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	if len(resp.Customers) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Customers))
	}
	if resp.Total != 2 {
		t.Errorf("total = %d, want 2", resp.Total)
	}
}

func TestDeleteCustomerUnknown(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	if err := svc.Delete(context.Background(), "123"); !errors.Is(err, customerdomain.ErrCustomerNotFound) {
		t.Fatalf("expected customer_not_found, got %v", err)
	}
}

func TestParseID(t *testing.T) {
	if _, err := ParseID("abc"); !errors.Is(err, customerdomain.ErrInvalidID) {
		t.Errorf("expected invalid_customer_id for non-numeric input, got %v", err)
	}
	if _, err := ParseID("0"); !errors.Is(err, customerdomain.ErrInvalidID) {
		t.Errorf("expected invalid_customer_id for zero, got %v", err)
	}
	id, err := ParseID(" 42 ")
	if err != nil {
		t.Fatalf("parse id: %v", err)
	}
	if int64(id) != 42 {
		t.Errorf("id = %d, want 42", id)
	}
}
