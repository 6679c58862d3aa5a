package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	customerdomain "github.com/haroun39/facteur/internal/customer/domain"
	invoicedomain "github.com/haroun39/facteur/internal/invoice/domain"
	paymentdomain "github.com/haroun39/facteur/internal/payment/domain"
	"github.com/haroun39/facteur/pkg/money"
)

// EnsureDemoData seeds a small set of customers, invoices, and payments so a
// fresh install has something to show. Does nothing when any customer
// already exists.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&customerdomain.Customer{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return insertDemoLedger(tx, node)
	})
}

func insertDemoLedger(tx *gorm.DB, node *snowflake.Node) error {
	now := time.Now().UTC()

	karim := customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Karim Benali",
		Phone:     "0550 12 34 56",
		Address:   "12 Rue des Oliviers",
		CreatedAt: now,
	}
	amina := customerdomain.Customer{
		ID:        node.Generate(),
		Name:      "Amina Cherif",
		Phone:     "0661 98 76 54",
		CreatedAt: now,
	}
	for _, customer := range []*customerdomain.Customer{&karim, &amina} {
		if err := tx.Create(customer).Error; err != nil {
			return err
		}
	}

	invoiceDate := now.AddDate(0, 0, -7)
	items := []invoicedomain.InvoiceItem{
		{ProductName: "Cement 50kg", UnitPrice: decimal.NewFromInt(12), Quantity: decimal.NewFromInt(10)},
		{ProductName: "Sand m3", UnitPrice: decimal.RequireFromString("35.50"), Quantity: decimal.NewFromInt(2)},
	}
	total := decimal.Zero
	invoiceID := node.Generate()
	for i := range items {
		items[i].ID = node.Generate()
		items[i].InvoiceID = invoiceID
		items[i].Total = money.LineTotal(items[i].UnitPrice, items[i].Quantity)
		total = total.Add(items[i].Total)
	}
	invoice := invoicedomain.Invoice{
		ID:            invoiceID,
		InvoiceNumber: "INV-0001",
		CustomerID:    karim.ID,
		Date:          datatypes.Date(invoiceDate),
		Total:         total,
		Status:        invoicedomain.StatusPartial,
		PaidAmount:    decimal.NewFromInt(100),
		CreatedAt:     now,
	}
	if err := tx.Create(&invoice).Error; err != nil {
		return err
	}
	for i := range items {
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}

	notes := "recorded with invoice " + invoice.InvoiceNumber
	payment := paymentdomain.Payment{
		ID:         node.Generate(),
		CustomerID: karim.ID,
		InvoiceID:  &invoice.ID,
		Amount:     invoice.PaidAmount,
		Date:       invoice.Date,
		Notes:      &notes,
		CreatedAt:  now,
	}
	return tx.Create(&payment).Error
}
