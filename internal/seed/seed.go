package seed

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/logging"
	categorysvc "storefront/internal/service/category"
	customersvc "storefront/internal/service/customer"
	productsvc "storefront/internal/service/product"
	reviewsvc "storefront/internal/service/review"
)

// Services are the write paths the seed goes through, so seeded rows pass the
// same validation as API traffic.
type Services struct {
	Categories *categorysvc.Service
	Products   *productsvc.Service
	Customers  *customersvc.Service
	Reviews    *reviewsvc.Service
}

type productSeed struct {
	Name        string
	Description string
	ImageURL    string
	Price       string
	Weight      string
	Stock       int
	Category    string
}

var categories = []domain.Category{
	{Name: "Smartphones", Slug: "smartphones"},
	{Name: "Portátiles", Slug: "portatiles"},
	{Name: "Audio", Slug: "audio"},
}

var products = []productSeed{
	{
		Name:        "iPhone 15",
		Description: "El último modelo de iPhone con características avanzadas.",
		ImageURL:    "https://example.com/images/iphone15.jpg",
		Price:       "999.99",
		Weight:      "0.174",
		Stock:       50,
		Category:    "smartphones",
	},
	{
		Name:        "Samsung Galaxy S23",
		Description: "Smartphone de alta gama con pantalla AMOLED.",
		ImageURL:    "https://example.com/images/galaxy_s23.jpg",
		Price:       "899.99",
		Weight:      "0.168",
		Stock:       30,
		Category:    "smartphones",
	},
	{
		Name:        "Dell XPS 13",
		Description: "Portátil ultraligero con rendimiento excepcional.",
		ImageURL:    "https://example.com/images/dell_xps13.jpg",
		Price:       "1199.99",
		Weight:      "1.2",
		Stock:       20,
		Category:    "portatiles",
	},
	{
		Name:        "Sony WH-1000XM4",
		Description: "Auriculares inalámbricos con cancelación de ruido líder en la industria.",
		ImageURL:    "https://example.com/images/sony_wh1000xm4.jpg",
		Price:       "349.99",
		Weight:      "0.254",
		Stock:       100,
		Category:    "audio",
	},
}

var customers = []domain.Customer{
	{FirstName: "John", LastName: "Doe", Email: "jdoe@hotmail.com"},
	{FirstName: "Jane", LastName: "Smith", Email: "jsmith@hotmail.com"},
	{FirstName: "Martín", LastName: "Varela", Email: "mvarelochoa@hotmail.com"},
}

type reviewSeed struct {
	Product  string
	Customer string
	Rating   int
	Comment  string
}

// John's three reviews of the iPhone land on the same row; the last one wins.
var reviews = []reviewSeed{
	{"iPhone 15", "jdoe@hotmail.com", 5, "Excelente producto, muy satisfecho con la compra."},
	{"iPhone 15", "jdoe@hotmail.com", 4, "Buen producto, lo recomiendo."},
	{"iPhone 15", "jdoe@hotmail.com", 3, "El producto está bien, pero esperaba más."},
	{"iPhone 15", "mvarelochoa@hotmail.com", 2, "No estoy satisfecho con el producto."},
}

// Apply inserts the demo catalog, customers and reviews, writing a report to out.
// Every step upserts on a natural key, so running it again converges on the same rows.
func Apply(ctx context.Context, svc Services, out io.Writer, logger logrus.FieldLogger) error {
	logger = logging.OrDiscard(logger)

	categoryIDs := make(map[string]int64, len(categories))
	for _, c := range categories {
		saved, err := svc.Categories.UpsertBySlug(ctx, c)
		if err != nil {
			return fmt.Errorf("seed category %s: %w", c.Slug, err)
		}
		categoryIDs[saved.Slug] = saved.ID
	}
	logger.WithField("count", len(categoryIDs)).Info("categories seeded")

	fmt.Fprintln(out, "=== Products ===")
	productIDs := make(map[string]int64, len(products))
	for _, p := range products {
		in, err := p.toDomain(categoryIDs)
		if err != nil {
			return err
		}
		saved, created, err := svc.Products.UpsertByName(ctx, in)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
		productIDs[saved.Name] = saved.ID
		verb := "updated"
		if created {
			verb = "created"
		}
		fmt.Fprintf(out, "%s %s\n", verb, domain.FormatProduct(*saved))
	}

	fmt.Fprintln(out, "\n=== Customers ===")
	customerIDs := make(map[string]int64, len(customers))
	for _, c := range customers {
		saved, _, err := svc.Customers.UpsertByEmail(ctx, c)
		if err != nil {
			return fmt.Errorf("seed customer %s: %w", c.Email, err)
		}
		customerIDs[saved.Email] = saved.ID
		fmt.Fprintf(out, "%d. %s, %s - %s\n", saved.ID, saved.FirstName, saved.LastName, saved.Email)
	}

	for _, r := range reviews {
		comment := r.Comment
		_, _, err := svc.Reviews.Upsert(ctx, reviewsvc.UpsertInput{
			ProductID:  productIDs[r.Product],
			CustomerID: customerIDs[r.Customer],
			Rating:     r.Rating,
			Comment:    &comment,
		})
		if err != nil {
			return fmt.Errorf("seed review %s by %s: %w", r.Product, r.Customer, err)
		}
	}
	logger.WithField("count", len(reviews)).Info("reviews seeded")

	iphone := productIDs["iPhone 15"]
	list, err := svc.Reviews.ListByProduct(ctx, iphone)
	if err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}
	fmt.Fprintln(out, "\n=== Reviews for iPhone 15 ===")
	for _, r := range list {
		comment := ""
		if r.Comment != nil {
			comment = *r.Comment
		}
		fmt.Fprintf(out, "- customer %d rated %d: %s\n", r.CustomerID, r.Rating, comment)
	}

	avg, err := svc.Reviews.AverageRating(ctx, iphone)
	if err != nil {
		return fmt.Errorf("average rating: %w", err)
	}
	fmt.Fprintf(out, "Average rating for iPhone 15: %s\n", formatAverage(avg))
	return nil
}

func (p productSeed) toDomain(categoryIDs map[string]int64) (domain.Product, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("seed product %s price: %w", p.Name, err)
	}
	weight, err := decimal.NewFromString(p.Weight)
	if err != nil {
		return domain.Product{}, fmt.Errorf("seed product %s weight: %w", p.Name, err)
	}
	imageURL := p.ImageURL
	return domain.Product{
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    &imageURL,
		Price:       price,
		Weight:      &weight,
		Stock:       p.Stock,
		IsActive:    true,
		CategoryID:  categoryIDs[p.Category],
	}, nil
}

func formatAverage(avg *float64) string {
	if avg == nil {
		return "no reviews"
	}
	return strconv.FormatFloat(*avg, 'f', -1, 64)
}
