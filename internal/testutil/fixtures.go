package testutil

import (
	"time"

	"github.com/roach88/recipebox/internal/recipe"
)

// Date returns midnight UTC on the given day, as a pointer for DateAdded.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// Rating returns a pointer to v, for Recipe.Rating.
func Rating(v float64) *float64 {
	return &v
}

// Githeri is a vegetarian Kenyan staple added 2024-01-15, not a favorite.
func Githeri() recipe.Recipe {
	return recipe.Recipe{
		ID:          "1",
		Name:        "Githeri",
		Description: "A swahili dish made from maize and beans cooked together in water.",
		Ingredients: []string{"Maize", "Beans", "Water", "Salt", "Onions", "Tomatoes", "Cooking oil"},
		Instructions: "Boil maize and beans in water until soft. Fry onions and tomatoes in oil, " +
			"add to the boiled maize and beans, and cook for 10 minutes.",
		Image:        "/githeri.jpg",
		PrepTime:     45,
		CookTime:     30,
		Servings:     4,
		Difficulty:   recipe.Easy,
		Cuisine:      "Kenyan",
		Tags:         []string{"Main Dish", "Traditional", "Vegetarian"},
		DateAdded:    Date(2024, time.January, 15),
		Rating:       Rating(4.5),
		TotalRatings: 12,
	}
}

// Pilau is a spiced rice and beef dish added 2024-01-10, a favorite.
func Pilau() recipe.Recipe {
	return recipe.Recipe{
		ID:          "2",
		Name:        "Pilau",
		Description: "A flavorful rice dish cooked with spices and meat.",
		Ingredients: []string{"Rice", "Beef", "Pilau masala", "Onions", "Tomatoes", "Garlic", "Ginger"},
		Instructions: "Fry onions, garlic, and ginger. Add beef and cook until browned. " +
			"Add tomatoes and pilau masala, then cook for 10 minutes. Add rice and water, then cook until done.",
		Image:        "/pilau.jpg",
		IsFavorite:   true,
		PrepTime:     20,
		CookTime:     40,
		Servings:     6,
		Difficulty:   recipe.Medium,
		Cuisine:      "Swahili",
		Tags:         []string{"Rice", "Meat", "Festive"},
		DateAdded:    Date(2024, time.January, 10),
		Rating:       Rating(5),
		TotalRatings: 8,
	}
}

// UgaliSamaki is ugali with fish added 2024-01-05, a favorite.
func UgaliSamaki() recipe.Recipe {
	return recipe.Recipe{
		ID:          "3",
		Name:        "Ugali Samaki",
		Description: "A Kenyan dish of ugali served with fish in tomato sauce.",
		Ingredients: []string{"Maize flour", "Water", "Fish", "Tomatoes", "Onions", "Cooking oil"},
		Instructions: "Boil water, add maize flour, and cook until thick. Fry fish, onions, and tomatoes in oil, " +
			"then add water and cook for 10 minutes.",
		Image:        "/ugali.webp",
		IsFavorite:   true,
		PrepTime:     15,
		CookTime:     25,
		Servings:     3,
		Difficulty:   recipe.Easy,
		Cuisine:      "Kenyan",
		Tags:         []string{"Fish", "Staple", "Quick"},
		DateAdded:    Date(2024, time.January, 5),
		Rating:       Rating(4.8),
		TotalRatings: 15,
	}
}

// SampleRecipes returns Githeri, Pilau and Ugali Samaki in that order.
func SampleRecipes() []recipe.Recipe {
	return []recipe.Recipe{Githeri(), Pilau(), UgaliSamaki()}
}

// ValidDraft returns a draft that passes validation.
func ValidDraft(name string) recipe.Draft {
	return recipe.Draft{
		Name:         name,
		Description:  "A test dish.",
		Ingredients:  []string{"Water", "Salt"},
		Instructions: "Boil the water. Add salt.",
		Image:        "/test.jpg",
	}
}
