package client

import (
	"errors"
	"testing"
	"time"

	"github.com/nexushub/agency-api/internal/analytics"
	"github.com/nexushub/agency-api/internal/auth"
	"github.com/nexushub/agency-api/internal/contract"
	"github.com/nexushub/agency-api/internal/integration"
	"github.com/nexushub/agency-api/internal/models"
	"github.com/nexushub/agency-api/internal/post"
	"github.com/nexushub/agency-api/internal/product"
	"github.com/nexushub/agency-api/internal/settings"
	"github.com/nexushub/agency-api/internal/vault"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&Client{},
		&auth.Profile{},
		&auth.RefreshToken{},
		&post.BlogPost{},
		&integration.Integration{},
		&product.Product{},
		&product.GlobalProduct{},
		&contract.Contract{},
		&vault.Item{},
		&analytics.VisitStats{},
		&settings.AgencySettings{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestClient(email string) *Client {
	return &Client{
		Name:          "Alice Ferreira",
		Email:         email,
		Company:       "Bloom Floricultura",
		Phone:         "11987654321",
		SiteURL:       "https://bloom.com.br",
		SiteType:      SiteEcommerce,
		HostingExpiry: time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC),
		Address: Address{
			Street:       "Rua das Flores",
			Number:       "120",
			Neighborhood: "Jardim Paulista",
			City:         "São Paulo",
			State:        "SP",
			ZipCode:      "01410-000",
		},
	}
}

func TestCreateAndListAllRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	c := newTestClient("alice@bloom.com")
	initial := []product.Product{
		{Name: "Hospedagem Premium", Price: 89.9, Active: true},
		{Name: "SEO Mensal", Price: 450, Active: true},
	}
	id, err := repo.Create(db, c, "hash", initial, []int{1, 2, 3, 4, 5, 6, 7})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	roster, err := repo.ListAll(db)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 client, got %d", len(roster))
	}

	got := roster[0]
	if got.Email != "alice@bloom.com" || got.Company != "Bloom Floricultura" {
		t.Errorf("profile fields lost in round trip: %+v", got)
	}
	if got.Address.City != "São Paulo" || got.Address.ZipCode != "01410-000" {
		t.Errorf("address lost in round trip: %+v", got.Address)
	}
	if len(got.Products) != 2 {
		t.Errorf("expected 2 products, got %d", len(got.Products))
	}
	if len(got.Integrations) != 2 {
		t.Errorf("expected 2 default integrations, got %d", len(got.Integrations))
	}
	for _, i := range got.Integrations {
		if i.Status != integration.StatusDisconnected {
			t.Errorf("default integration %q should be disconnected, got %q", i.Name, i.Status)
		}
	}
	if len(got.Visits) != analytics.WeekLength {
		t.Fatalf("expected %d visit slots, got %d", analytics.WeekLength, len(got.Visits))
	}
	if got.Visits[0] != 1 || got.Visits[6] != 7 {
		t.Errorf("visit series lost in round trip: %v", got.Visits)
	}
	// Collections the client does not have yet must be empty, never nil.
	if got.Posts == nil || got.Contracts == nil || got.VaultItems == nil {
		t.Error("absent collections must default to empty slices")
	}
}

func TestCreateAlsoCreatesLoginProfile(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	id, err := repo.Create(db, newTestClient("alice@bloom.com"), "hash", nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	profile, err := auth.FindProfileByEmail(db, "alice@bloom.com")
	if err != nil {
		t.Fatalf("profile lookup: %v", err)
	}
	if profile.Role != auth.RoleClient {
		t.Errorf("expected client role, got %q", profile.Role)
	}
	if profile.ClientID == nil || *profile.ClientID != id {
		t.Errorf("profile not linked to client %d: %+v", id, profile)
	}
}

func TestListAllEmptyRosterIsNotAnError(t *testing.T) {
	db := openTestDB(t)
	roster, err := NewRepository().ListAll(db)
	if err != nil {
		t.Fatalf("empty roster must not error: %v", err)
	}
	if len(roster) != 0 {
		t.Fatalf("expected empty roster, got %d", len(roster))
	}
}

func TestFindByEmailNotFoundDistinction(t *testing.T) {
	db := openTestDB(t)
	_, err := NewRepository().FindByEmail(db, "nobody@nowhere.com")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, models.ErrBackendUnavailable) {
		t.Fatal("not-found must be distinguishable from backend failure")
	}
}

func TestCreateDuplicateEmailRejected(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	if _, err := repo.Create(db, newTestClient("alice@bloom.com"), "hash", nil, nil); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := repo.Create(db, newTestClient("alice@bloom.com"), "hash", nil, nil)
	if !errors.Is(err, models.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	roster, err := repo.ListAll(db)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("duplicate create must not add rows, roster has %d", len(roster))
	}
}

func TestUpdateFieldsIsSparse(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	id, err := repo.Create(db, newTestClient("alice@bloom.com"),
		"hash", []product.Product{{Name: "SEO", Price: 450}}, []int{9, 9, 9, 9, 9, 9, 9})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before, err := repo.FindByID(db, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	company := "Bloom Flores e Jardins"
	after, err := repo.UpdateFields(db, id, &UpdateClientRequest{Company: &company})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if after.Company != company {
		t.Errorf("company not updated: %q", after.Company)
	}
	if after.Name != before.Name || after.Email != before.Email ||
		after.Phone != before.Phone || after.SiteURL != before.SiteURL ||
		after.SiteType != before.SiteType || after.Address != before.Address {
		t.Error("sparse update touched unrelated scalar fields")
	}
	if len(after.Products) != len(before.Products) ||
		len(after.Integrations) != len(before.Integrations) {
		t.Error("sparse update touched collections")
	}
	if len(after.Visits) != analytics.WeekLength || after.Visits[0] != 9 {
		t.Errorf("sparse update touched visits: %v", after.Visits)
	}
}

func TestUpdateEmailMovesLoginProfile(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	id, err := repo.Create(db, newTestClient("alice@bloom.com"), "hash", nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	email := "alice@bloomflores.com.br"
	if _, err := repo.UpdateFields(db, id, &UpdateClientRequest{Email: &email}); err != nil {
		t.Fatalf("update email: %v", err)
	}

	profile, err := auth.FindProfileByEmail(db, email)
	if err != nil {
		t.Fatalf("login profile did not follow the email change: %v", err)
	}
	if profile.ClientID == nil || *profile.ClientID != id {
		t.Fatalf("moved profile lost its client link: %+v", profile)
	}
	if _, err := auth.FindProfileByEmail(db, "alice@bloom.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("old email should no longer resolve a profile, got %v", err)
	}
	// Session hydration keys on the profile email; it must still resolve
	// the aggregate.
	if _, err := repo.FindByEmail(db, email); err != nil {
		t.Fatalf("aggregate lookup by the new email failed: %v", err)
	}
}

func TestUpdateFieldsUnknownID(t *testing.T) {
	db := openTestDB(t)
	name := "x"
	_, err := NewRepository().UpdateFields(db, 999, &UpdateClientRequest{Name: &name})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceProductsEmptyWipesOnlyProducts(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	id, err := repo.Create(db, newTestClient("alice@bloom.com"),
		"hash", []product.Product{{Name: "SEO", Price: 450}}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := contract.NewRepository().Create(db, &contract.Contract{
		ClientID: id, Title: "Manutenção", Status: contract.StatusActive,
	}); err != nil {
		t.Fatalf("contract create: %v", err)
	}

	if err := repo.ReplaceProducts(db, id, []product.Product{}); err != nil {
		t.Fatalf("replace products: %v", err)
	}

	got, err := repo.FindByID(db, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Products) != 0 {
		t.Errorf("expected zero products, got %d", len(got.Products))
	}
	if len(got.Contracts) != 1 || len(got.Integrations) != 2 {
		t.Error("replace-products must not touch contracts or integrations")
	}
}

func TestReplaceContractsWholesale(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	id, err := repo.Create(db, newTestClient("alice@bloom.com"), "hash", nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	first := []contract.Contract{{Title: "Antigo", Status: contract.StatusExpired}}
	if err := repo.ReplaceContracts(db, id, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	second := []contract.Contract{
		{Title: "Novo", Status: contract.StatusActive, Value: 5400},
		{Title: "Extra", Status: contract.StatusPending, Value: 1200},
	}
	if err := repo.ReplaceContracts(db, id, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := repo.FindByID(db, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Contracts) != 2 {
		t.Fatalf("expected 2 contracts after replace, got %d", len(got.Contracts))
	}
	for _, c := range got.Contracts {
		if c.Title == "Antigo" {
			t.Error("old contract survived wholesale replace")
		}
	}
}

func TestAnalyticsDefaultsToSevenZeros(t *testing.T) {
	db := openTestDB(t)

	// Raw insert, bypassing Create, so no analytics row exists.
	c := newTestClient("bare@client.com")
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	roster, err := NewRepository().ListAll(db)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 client, got %d", len(roster))
	}
	visits := roster[0].Visits
	if len(visits) != analytics.WeekLength {
		t.Fatalf("expected %d slots, got %d", analytics.WeekLength, len(visits))
	}
	for i, v := range visits {
		if v != 0 {
			t.Fatalf("slot %d should default to 0, got %d", i, v)
		}
	}
}

func TestDeleteRemovesEverythingOwned(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	id, err := repo.Create(db, newTestClient("alice@bloom.com"),
		"hash", []product.Product{{Name: "SEO", Price: 450}}, []int{1, 1, 1, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := post.NewRepository().Create(db, &post.BlogPost{ClientID: id, Title: "Olá"}); err != nil {
		t.Fatalf("post create: %v", err)
	}
	if err := contract.NewRepository().Create(db, &contract.Contract{ClientID: id, Title: "Manutenção"}); err != nil {
		t.Fatalf("contract create: %v", err)
	}
	if err := vault.NewRepository().Create(db, &vault.Item{ClientID: id, Name: "FTP"}); err != nil {
		t.Fatalf("vault create: %v", err)
	}

	if err := repo.Delete(db, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.FindByID(db, id); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("client should be gone, got %v", err)
	}
	owned := map[string]interface{}{
		"posts":        &post.BlogPost{},
		"integrations": &integration.Integration{},
		"products":     &product.Product{},
		"contracts":    &contract.Contract{},
		"vault":        &vault.Item{},
		"stats":        &analytics.VisitStats{},
	}
	for name, model := range owned {
		var n int64
		db.Model(model).Where("client_id = ?", id).Count(&n)
		if n != 0 {
			t.Errorf("owned %s rows survived delete: %d", name, n)
		}
	}
	if _, err := auth.FindProfileByEmail(db, "alice@bloom.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("login profile should be gone, got %v", err)
	}
}

// Deleting a client must free its email: the unique index cannot keep a
// soft-deleted row that blocks re-registration.
func TestDeleteThenRecreateSameEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository()

	id, err := repo.Create(db, newTestClient("alice@bloom.com"), "hash", nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(db, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var residue int64
	db.Unscoped().Model(&Client{}).Where("email = ?", "alice@bloom.com").Count(&residue)
	if residue != 0 {
		t.Fatalf("delete left %d soft-deleted client rows behind", residue)
	}
	db.Unscoped().Model(&auth.Profile{}).Where("email = ?", "alice@bloom.com").Count(&residue)
	if residue != 0 {
		t.Fatalf("delete left %d soft-deleted profile rows behind", residue)
	}

	newID, err := repo.Create(db, newTestClient("alice@bloom.com"), "hash", nil, nil)
	if err != nil {
		t.Fatalf("recreating a deleted client's email must succeed: %v", err)
	}
	if newID == id {
		t.Fatal("recreated client should be a fresh row")
	}
}

func TestDeleteUnknownID(t *testing.T) {
	db := openTestDB(t)
	if err := NewRepository().Delete(db, 42); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
