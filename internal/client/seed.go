package client

import (
	"errors"
	"time"

	"github.com/nexushub/agency-api/internal/auth"
	"github.com/nexushub/agency-api/internal/contract"
	"github.com/nexushub/agency-api/internal/models"
	"github.com/nexushub/agency-api/internal/post"
	"github.com/nexushub/agency-api/internal/product"
	"github.com/nexushub/agency-api/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// demoFixture is one demo client plus the extra rows the plain Create flow
// would not insert.
type demoFixture struct {
	client    Client
	password  string
	visits    []int
	products  []product.Product
	posts     []post.BlogPost
	contracts []contract.Contract
}

const demoAdminEmail = "admin@nexushub.com"

func demoFixtures() []demoFixture {
	now := time.Now()
	return []demoFixture{
		{
			client: Client{
				Name:              "Alice Ferreira",
				Email:             "alice@bloom.com",
				Company:           "Bloom Floricultura",
				Phone:             "11987654321",
				ResponsiblePerson: "Alice Ferreira",
				SiteURL:           "https://bloom.com.br",
				SiteType:          SiteEcommerce,
				HostingExpiry:     now.AddDate(1, 0, 0),
				Address: Address{
					Street:       "Rua das Flores",
					Number:       "120",
					Neighborhood: "Jardim Paulista",
					City:         "São Paulo",
					State:        "SP",
					ZipCode:      "01410-000",
				},
			},
			password: "bloom123",
			visits:   []int{42, 51, 38, 67, 80, 73, 29},
			products: []product.Product{
				{Name: "Hospedagem Premium", Description: "Hospedagem gerenciada", Price: 89.9, Active: true},
				{Name: "SEO Mensal", Description: "Otimização contínua", Price: 450, Active: true},
			},
			posts: []post.BlogPost{
				{Title: "Como cuidar de orquídeas no inverno", Status: post.StatusPublished, Date: now.AddDate(0, 0, -7), Content: "Orquídeas pedem atenção extra nos meses frios..."},
				{Title: "Tendências de arranjos para casamentos", Status: post.StatusDraft, Date: now, Content: ""},
			},
			contracts: []contract.Contract{
				{Title: "Manutenção anual do site", StartDate: now.AddDate(0, -6, 0), EndDate: now.AddDate(0, 6, 0), Value: 5400, Status: contract.StatusActive},
			},
		},
		{
			client: Client{
				Name:              "Bruno Costa",
				Email:             "bruno@techwave.com",
				Company:           "TechWave Consultoria",
				Phone:             "21998765432",
				ResponsiblePerson: "Bruno Costa",
				SiteURL:           "https://techwave.com.br",
				SiteType:          SiteInstitutional,
				HostingExpiry:     now.AddDate(0, 8, 0),
			},
			password: "techwave123",
			visits:   []int{15, 22, 18, 25, 31, 12, 9},
			posts: []post.BlogPost{
				{Title: "5 sinais de que sua empresa precisa de consultoria", Status: post.StatusPublished, Date: now.AddDate(0, 0, -14), Content: "Nem sempre é fácil admitir..."},
			},
			contracts: []contract.Contract{
				{Title: "Desenvolvimento do site institucional", StartDate: now.AddDate(-1, 0, 0), EndDate: now.AddDate(0, -2, 0), Value: 12000, Status: contract.StatusExpired},
				{Title: "Suporte mensal", StartDate: now.AddDate(0, -2, 0), EndDate: now.AddDate(0, 10, 0), Value: 3600, Status: contract.StatusActive},
			},
		},
		{
			client: Client{
				Name:          "Carla Mendes",
				Email:         "carla@saborcaseiro.com",
				Company:       "Sabor Caseiro Restaurante",
				Phone:         "31987651234",
				SiteURL:       "https://saborcaseiro.com.br",
				SiteType:      SiteLandingPage,
				HostingExpiry: now.AddDate(0, 3, 0),
			},
			password: "sabor123",
			visits:   []int{88, 95, 110, 102, 130, 145, 120},
		},
	}
}

// Seed inserts the demo roster and the admin profile. Idempotent by
// email: a rerun never duplicates clients.
func Seed(db *gorm.DB, logger *zap.Logger) error {
	repo := NewRepository()
	postRepo := post.NewRepository()
	contractRepo := contract.NewRepository()

	// Admin login first, same idempotence rule.
	if _, err := auth.FindProfileByEmail(db, demoAdminEmail); errors.Is(err, gorm.ErrRecordNotFound) {
		hash, err := utils.HashPassword("admin123")
		if err != nil {
			return err
		}
		admin := auth.Profile{Email: demoAdminEmail, PasswordHash: hash, Role: auth.RoleAdmin}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		logger.Info("seeded admin profile", zap.String("email", demoAdminEmail))
	}

	for _, fx := range demoFixtures() {
		_, err := repo.FindByEmail(db, fx.client.Email)
		if err == nil {
			continue // already seeded
		}
		if !errors.Is(err, models.ErrNotFound) {
			return err
		}

		hash, err := utils.HashPassword(fx.password)
		if err != nil {
			return err
		}
		c := fx.client
		id, err := repo.Create(db, &c, hash, fx.products, fx.visits)
		if err != nil {
			return err
		}

		for i := range fx.posts {
			fx.posts[i].ClientID = id
			if err := postRepo.Create(db, &fx.posts[i]); err != nil {
				return err
			}
		}
		if len(fx.contracts) > 0 {
			rows := fx.contracts
			for i := range rows {
				rows[i].ClientID = id
			}
			if err := contractRepo.CreateMany(db, rows); err != nil {
				return err
			}
		}
		logger.Info("seeded demo client", zap.String("email", c.Email))
	}
	return nil
}
