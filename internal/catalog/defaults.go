package catalog

// Built-in category ids.
const (
	Tech       = "tech"
	Motivation = "motivation"
	Humor      = "humor"
	Business   = "business"
	Health     = "health"
)

var defaultCatalog = MustNew(
	Category{
		ID:          Tech,
		DisplayName: "Technology",
		Candidates: []string{
			"Just discovered a new AI tool that's revolutionizing how I code. The future is here! #AI #TechInnovation",
			"Spent the weekend building a side project with React and TypeScript. Love how the type safety makes refactoring so much easier! #WebDev #TypeScript",
			"Cloud computing has transformed how we build applications. Remember when we had to manage our own servers? #CloudComputing #DevOps",
		},
	},
	Category{
		ID:          Motivation,
		DisplayName: "Motivation",
		Candidates: []string{
			"The only way to do great work is to love what you do. If you haven't found it yet, keep looking. Don't settle. #Motivation #Success",
			"Your time is limited, so don't waste it living someone else's life. Have the courage to follow your heart and intuition. #Inspiration",
			"The difference between who you are and who you want to be is what you do. Take action today! #Goals #Motivation",
		},
	},
	Category{
		ID:          Humor,
		DisplayName: "Humor",
		Candidates: []string{
			"I told my wife she was drawing her eyebrows too high. She looked surprised. #DadJokes",
			"Why don't scientists trust atoms? Because they make up everything! #ScienceHumor",
			"I'm on a seafood diet. I see food and I eat it. #FoodJokes #Humor",
		},
	},
	Category{
		ID:          Business,
		DisplayName: "Business",
		Candidates: []string{
			"The best entrepreneurs don't just solve problems, they anticipate them before they happen. #Business #Entrepreneurship",
			"Customer experience isn't just a department, it's everyone's job. #CustomerSuccess #Business",
			"The biggest risk is not taking any risk. In a world that's changing quickly, the only strategy guaranteed to fail is not taking risks. #BusinessStrategy",
		},
	},
	Category{
		ID:          Health,
		DisplayName: "Health & Wellness",
		Candidates: []string{
			"Your body hears everything your mind says. Stay positive. #Wellness #MentalHealth",
			"The greatest wealth is health. Take care of your body, it's the only place you have to live. #HealthyLiving",
			"Small daily improvements are the key to long-term health success. Just 1% better each day adds up! #HealthGoals #Wellness",
		},
	},
)

// Default returns the built-in catalog of five categories with three
// tweets each. The returned value is shared; it is safe because a
// Catalog never changes after construction.
func Default() *Catalog {
	return defaultCatalog
}
