package database

import (
	"slices"
	"strings"
	"testing"
	"time"

	"cafe-billing/config"
	"cafe-billing/internal/models"
)

func TestMySQLDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "components",
			cfg:  config.DatabaseConfig{User: "root", Password: "pw", Host: "db", Port: "3306", Name: "shop"},
			want: "root:pw@tcp(db:3306)/shop?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "url without params",
			cfg:  config.DatabaseConfig{URL: "mysql://u:p@host:3307/shop"},
			want: "u:p@tcp(host:3307)/shop?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "mariadb url keeps params",
			cfg:  config.DatabaseConfig{URL: "mariadb://u:p@host:3306/shop?tls=true"},
			want: "u:p@tcp(host:3306)/shop?tls=true",
		},
		{
			name: "raw dsn passes through",
			cfg:  config.DatabaseConfig{URL: "u:p@tcp(host:3306)/shop"},
			want: "u:p@tcp(host:3306)/shop",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mysqlDSN(tt.cfg); got != tt.want {
				t.Fatalf("mysqlDSN = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDriverName(t *testing.T) {
	if got := driverName(config.DatabaseConfig{URL: "postgres://u:p@h/db"}); got != "postgres" {
		t.Fatalf("driverName = %s, want postgres", got)
	}
	if got := driverName(config.DatabaseConfig{}); got != "mysql" {
		t.Fatalf("driverName = %s, want mysql", got)
	}
	if _, err := dialectorFor(config.DatabaseConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}

func TestOpenSQLiteMigrateAndSeed(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Name: "file:seedtest?mode=memory&cache=shared"}, "test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	defaults := config.DefaultsConfig{AdminEmail: "Owner@Example.com", AdminName: "Owner", AdminPassword: "secret123"}
	SeedAdmin(db, defaults)
	SeedAdmin(db, defaults)

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		t.Fatalf("find users: %v", err)
	}
	if len(users) != 1 || users[0].Email != "owner@example.com" {
		t.Fatalf("expected one seeded admin, got %+v", users)
	}
	if users[0].PasswordHash == defaults.AdminPassword {
		t.Fatal("admin password stored in plaintext")
	}
}

func TestMigrateRelationsPointAtParents(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: "sqlite", Name: "file:schematest?mode=memory&cache=shared&_pragma=foreign_keys(1)"}, "test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	type fk struct {
		Table string `gorm:"column:table"`
		From  string `gorm:"column:from"`
		To    string `gorm:"column:to"`
	}
	foreignKeys := func(table string) []fk {
		var rows []fk
		if err := db.Raw(`SELECT "table", "from", "to" FROM pragma_foreign_key_list(?)`, table).Scan(&rows).Error; err != nil {
			t.Fatalf("foreign keys of %s: %v", table, err)
		}
		return rows
	}

	tests := []struct {
		table string
		want  []fk
	}{
		{"customers", nil},
		{"suppliers", nil},
		{"bills", []fk{{"customers", "customer_id", "id"}}},
		{"customer_credentials", []fk{{"customers", "customer_id", "id"}}},
		{"products", []fk{{"suppliers", "supplier_id", "id"}}},
		{"payments", []fk{{"bills", "bill_id", "id"}}},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			got := foreignKeys(tt.table)
			if len(tt.want) == 0 && len(got) != 0 {
				t.Fatalf("%s must not reference other tables, got %+v", tt.table, got)
			}
			for _, want := range tt.want {
				if !slices.Contains(got, want) {
					t.Fatalf("%s foreign keys = %+v, missing %+v", tt.table, got, want)
				}
			}
		})
	}

	codes := []struct {
		model  any
		column string
		stale  string
	}{
		{&models.Customer{}, "customer_code", "customer_id"},
		{&models.Supplier{}, "supplier_code", "supplier_id"},
		{&models.Product{}, "product_ref", "product_id"},
	}
	for _, c := range codes {
		if !db.Migrator().HasColumn(c.model, c.column) {
			t.Fatalf("%T has no %s column", c.model, c.column)
		}
		if db.Migrator().HasColumn(c.model, c.stale) {
			t.Fatalf("%T still has a %s column", c.model, c.stale)
		}
		types, err := db.Migrator().ColumnTypes(c.model)
		if err != nil {
			t.Fatalf("column types: %v", err)
		}
		for _, ct := range types {
			if ct.Name() == c.column && strings.EqualFold(ct.DatabaseTypeName(), "integer") {
				t.Fatalf("%s is an integer column", c.column)
			}
		}
	}

	// foreign keys are enforced on this connection, so the inserts prove the direction
	customer := models.Customer{OwnerID: 1, CustomerCode: "CUST0001", Name: "Asha"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	bill := models.Bill{OwnerID: 1, BillNumber: "BILL0001", CustomerID: &customer.ID, BillDate: time.Now()}
	if err := db.Omit("Customer").Create(&bill).Error; err != nil {
		t.Fatalf("create bill: %v", err)
	}
	var loaded models.Bill
	if err := db.Preload("Customer").First(&loaded, bill.ID).Error; err != nil {
		t.Fatalf("load bill: %v", err)
	}
	if loaded.Customer == nil || loaded.Customer.CustomerCode != "CUST0001" || loaded.Customer.Name != "Asha" {
		t.Fatalf("bill customer = %+v", loaded.Customer)
	}
}
