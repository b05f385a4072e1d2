// Package datagen provides a seeded fake-data source. Every draw goes
// through an explicit *rand.Rand so a run is fully reproducible from its
// seed, including across forked sub-sources.
package datagen

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Lisa", "Daniel", "Nancy",
	"Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra", "Donald", "Ashley",
	"Steven", "Dorothy", "Paul", "Kimberly", "Andrew", "Emily", "Joshua", "Donna",
	"Kenneth", "Michelle", "Kevin", "Carol", "Brian", "Amanda", "George", "Melissa",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
	"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill",
	"Flores", "Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell",
}

var subjectWords = []string{
	"follow", "up", "pricing", "review", "menu", "planning", "quarterly", "business",
	"contract", "renewal", "product", "sampling", "delivery", "schedule", "account",
	"check", "in", "new", "item", "introduction", "volume", "discount", "discussion",
	"seasonal", "promotion", "order", "frequency", "kitchen", "walkthrough",
}

// Faker is a deterministic fake-data source bound to one random stream.
type Faker struct {
	seed int64
	r    *rand.Rand
}

// New returns a Faker seeded from the given value.
func New(seed int64) *Faker {
	return &Faker{seed: seed, r: rand.New(rand.NewSource(seed))}
}

// Fork derives an independent deterministic sub-source. Two forks with
// different labels never share a stream, so concurrent shards can draw in
// any scheduling order without affecting each other's output.
func (f *Faker) Fork(label string) *Faker {
	h := fnv.New64a()
	h.Write([]byte(label))
	return New(f.seed ^ int64(h.Sum64()))
}

// Intn returns a value in [0, n).
func (f *Faker) Intn(n int) int { return f.r.Intn(n) }

// IntRange returns a value in [min, max], inclusive on both ends.
func (f *Faker) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + f.r.Intn(max-min+1)
}

// Int64Range returns a value in [min, max], inclusive on both ends.
func (f *Faker) Int64Range(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + f.r.Int63n(max-min+1)
}

// Float64 returns a value in [0, 1).
func (f *Faker) Float64() float64 { return f.r.Float64() }

// Float64Range returns a value in [min, max).
func (f *Faker) Float64Range(min, max float64) float64 {
	return min + f.r.Float64()*(max-min)
}

// Percent reports true with probability p (0 disables, 1 always fires).
func (f *Faker) Percent(p float64) bool { return f.r.Float64() < p }

// LogNormal draws from a lognormal distribution with the given location and
// scale of the underlying normal.
func (f *Faker) LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*f.r.NormFloat64())
}

// Shuffle permutes the slice in place.
func Shuffle[T any](f *Faker, items []T) {
	f.r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Choose returns a uniformly random element of items.
func Choose[T any](f *Faker, items []T) T {
	return items[f.r.Intn(len(items))]
}

// WeightedChoose returns a random element where weights[i] is the relative
// weight of items[i]. Panics if the slices differ in length.
func WeightedChoose[T any](f *Faker, items []T, weights []float64) T {
	if len(items) != len(weights) {
		panic(fmt.Sprintf("datagen: %d items with %d weights", len(items), len(weights)))
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	target := f.r.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}

// FirstName returns a random given name.
func (f *Faker) FirstName() string { return Choose(f, firstNames) }

// LastName returns a random family name.
func (f *Faker) LastName() string { return Choose(f, lastNames) }

// PersonName returns "First Last".
func (f *Faker) PersonName() string {
	return f.FirstName() + " " + f.LastName()
}

// CompanyEmail derives a company-domain address from a person's name.
func (f *Faker) CompanyEmail(name, domain string) string {
	parts := strings.Fields(strings.ToLower(name))
	local := strings.Join(parts, ".")
	return local + "@" + domain
}

// Subject produces a short CRM subject line of n words.
func (f *Faker) Subject(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = Choose(f, subjectWords)
	}
	s := strings.Join(words, " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

// DateBetween returns a random day in [start, end], truncated to midnight UTC.
func (f *Faker) DateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, f.r.Intn(days+1))
}
