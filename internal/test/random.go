package test

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/devxankit/Electrici-toys/internal/domain/model"
)

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomPrice returns a positive price with two decimal places.
func RandomPrice() string {
	cents := 1 + randomIntn(99_999)
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// RandomQuantity returns a quantity between 1 and limit.
func RandomQuantity(limit int) int64 {
	if limit < 1 {
		limit = 1
	}
	return int64(1 + randomIntn(limit))
}

// RandomCatalog returns n orderable products keyed by id.
func RandomCatalog(n int) map[string]*model.Product {
	products := make(map[string]*model.Product, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("prod-%d", i)
		products[id] = &model.Product{
			ID:           id,
			Name:         fmt.Sprintf("Toy %d", i),
			SellingPrice: RandomPrice(),
			Active:       true,
		}
	}
	return products
}

// RandomIntn is a goroutine-safe rand.Intn.
func RandomIntn(n int) int {
	return randomIntn(n)
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
