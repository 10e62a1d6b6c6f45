// Package datagen produces realistic-looking test records: Nepal mobile
// numbers, Indian cities, and a gender field.
package datagen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Record is one generated row
type Record struct {
	ID     int    `json:"id"`
	Phone  string `json:"phone"`
	City   string `json:"city"`
	Gender string `json:"gender"`
}

var indianCities = []string{
	"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Ahmedabad",
	"Chennai", "Kolkata", "Surat", "Pune", "Jaipur",
	"Lucknow", "Kanpur", "Nagpur", "Indore", "Thane",
	"Bhopal", "Visakhapatnam", "Pimpri-Chinchwad", "Patna", "Vadodara",
}

var genders = []string{"Male", "Female", "Other"}

// DefaultCount is used when a request names no row count
const DefaultCount = 10

// Generator creates Record batches from a seeded random source
type Generator struct {
	rng *rand.Rand
}

// New creates a generator with a randomized seed
func New() *Generator {
	return NewWithSeed(rand.Uint64(), rand.Uint64())
}

// NewWithSeed creates a generator with a fixed seed for reproducible
// output
func NewWithSeed(seed1, seed2 uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Phone returns a Nepal mobile number: a 98 or 99 prefix followed by
// eight digits
func (g *Generator) Phone() string {
	prefix := 98 + g.rng.IntN(2)
	suffix := 10000000 + g.rng.IntN(90000000)
	return strconv.Itoa(prefix) + strconv.Itoa(suffix)
}

// City returns a random Indian city
func (g *Generator) City() string {
	return indianCities[g.rng.IntN(len(indianCities))]
}

// Gender returns a random gender value
func (g *Generator) Gender() string {
	return genders[g.rng.IntN(len(genders))]
}

// Record generates one record with the given id
func (g *Generator) Record(id int) Record {
	return Record{
		ID:     id,
		Phone:  g.Phone(),
		City:   g.City(),
		Gender: g.Gender(),
	}
}

// Records generates count records with ids 1..count
func (g *Generator) Records(count int) []Record {
	records := make([]Record, 0, count)
	for id := 1; id <= count; id++ {
		records = append(records, g.Record(id))
	}
	return records
}

// FromRequest parses a free-form request like "100 rows with Nepal phone
// numbers, Indian cities, random gender" and generates matching records.
// The first number found is the row count; the request must mention at
// least one supported field.
func (g *Generator) FromRequest(request string) ([]Record, error) {
	count := DefaultCount
	for _, word := range strings.Fields(request) {
		if n, err := strconv.Atoi(word); err == nil {
			count = n
			break
		}
	}
	if count < 0 {
		return nil, fmt.Errorf("row count must not be negative: %d", count)
	}

	lower := strings.ToLower(request)
	mentionsField := strings.Contains(lower, "phone") ||
		strings.Contains(lower, "nepal") ||
		strings.Contains(lower, "city") ||
		strings.Contains(lower, "cities") ||
		strings.Contains(lower, "india") ||
		strings.Contains(lower, "gender")
	if !mentionsField {
		return nil, fmt.Errorf("request should mention phone, city, or gender")
	}

	return g.Records(count), nil
}
