package config

// Default cooking reference data. Operators can replace any of these lists
// through config without a rebuild; the quality analyzer treats them as
// injected vocabularies, not logic.

// DefaultKnowledge returns the built-in reference data with its standard
// plausibility limits. Config values override it field by field.
func DefaultKnowledge() KnowledgeConfig {
	return KnowledgeConfig{
		Ingredients:    defaultIngredients,
		Equipment:      defaultEquipment,
		CookingMethods: defaultCookingMethods,
		Units:          defaultUnits,
		Limits: LimitConfig{
			MaxTimeMinutes:         600,
			MinTemperatureF:        170,
			MaxTemperatureF:        550,
			MinServings:            1,
			MaxServings:            100,
			IngredientsPerServing:  2.0,
			TotalTimeToleranceMins: 10,
		},
	}
}

var defaultIngredients = []string{
	// grains
	"all-purpose flour", "bread flour", "cake flour", "whole wheat flour",
	"self-rising flour", "white rice", "brown rice", "jasmine rice",
	"basmati rice", "arborio rice", "spaghetti", "penne", "fettuccine",
	"linguine", "macaroni", "quinoa", "oats", "cornmeal", "breadcrumbs",
	// dairy
	"whole milk", "skim milk", "2% milk", "buttermilk", "heavy cream",
	"half-and-half", "cheddar", "mozzarella", "parmesan", "cream cheese",
	"ricotta", "butter", "yogurt", "sour cream", "eggs",
	// proteins
	"chicken", "beef", "pork", "turkey", "lamb",
	"salmon", "tuna", "shrimp", "cod", "tilapia",
	"tofu", "tempeh", "seitan", "lentils", "chickpeas",
	// produce
	"onion", "garlic", "carrot", "celery", "bell pepper", "tomato",
	"potato", "broccoli", "spinach", "lettuce", "cucumber", "zucchini",
	"apple", "banana", "orange", "lemon", "lime", "strawberry",
	"blueberry", "raspberry", "grape", "pineapple", "mango", "avocado",
	"basil", "parsley", "cilantro", "thyme", "rosemary", "oregano", "mint",
}

var defaultEquipment = []string{
	"oven", "stove", "microwave", "blender", "food processor", "mixer",
	"knife", "cutting board", "measuring cups", "measuring spoons",
	"pot", "pan", "baking sheet", "baking dish", "bowl", "whisk",
	"spatula", "spoon", "colander", "grater",
}

var defaultCookingMethods = []string{
	"bake", "broil", "grill", "roast", "fry", "sauté", "simmer", "boil",
	"steam", "poach", "braise", "stir-fry", "deep-fry", "blanch", "reduce",
}

var defaultUnits = []string{
	"cup", "cups", "tablespoon", "tbsp", "tbs", "teaspoon", "tsp",
	"ounce", "oz", "pound", "lb", "gram", "g", "kilogram", "kg",
	"milliliter", "ml", "liter", "l", "pinch", "dash", "clove", "cloves",
	"slice", "slices", "can", "cans", "piece", "pieces",
}
