package memory

import (
	"fmt"

	"relaypager/internal/domain/entity"
)

var (
	firstNames = []string{"Luke", "Leia", "Han", "Padme", "Anakin", "Rey", "Finn", "Poe", "Lando", "Jyn", "Cassian"}
	lastNames  = []string{"Skywalker", "Organa", "Solo", "Amidala", "Calrissian", "Erso", "Andor", "Dameron"}
)

// People returns n deterministic person records with sequential keys from 1.
func People(n int) []entity.Item {
	items := make([]entity.Item, n)
	for i := range items {
		pk := int64(i + 1)
		items[i] = entity.Item{
			ID: fmt.Sprintf("Person:%d", pk),
			PK: pk,
			Attributes: map[string]any{
				"firstName":    firstNames[i%len(firstNames)],
				"lastName":     lastNames[(i/len(firstNames))%len(lastNames)],
				"age":          18 + (i*7)%60,
				"alive":        i%5 != 0,
				"randomNumber": (i*7919 + 13) % 1000,
			},
		}
	}
	return items
}

// Squares returns n square records with sequential keys from 1, the data set
// the infinite list scrolls through.
func Squares(n int) []entity.Item {
	items := make([]entity.Item, n)
	for i := range items {
		pk := int64(i + 1)
		items[i] = entity.Item{
			ID: fmt.Sprintf("Square:%d", pk),
			PK: pk,
			Attributes: map[string]any{
				"color": fmt.Sprintf("#%06x", (int64(i)*2654435761)&0xffffff),
			},
		}
	}
	return items
}
