package main

import (
	"aptiprep/internal/config"
	"aptiprep/internal/model"
	"aptiprep/internal/repository"
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type topicSeed struct {
	category  model.Category
	topic     string
	questions []model.Question
}

func mcq(question, answer, explanation string, choices ...string) model.Question {
	return model.Question{
		Question:    question,
		Options:     choices,
		AnswerText:  answer,
		Explanation: explanation,
	}
}

var bank = []topicSeed{
	{
		category: model.CategoryArithmetic,
		topic:    "Profit and Loss",
		questions: []model.Question{
			mcq("An article bought for 200 is sold for 250. What is the profit percentage?", "25%",
				"Profit is 50 on a cost of 200, so 50/200 = 25%.", "20%", "25%", "30%", "50%"),
			mcq("A shopkeeper sells an item for 450 at a loss of 10%. What was the cost price?", "500",
				"Selling price is 90% of cost, so cost = 450/0.9 = 500.", "495", "500", "405", "550"),
			mcq("If the cost price of 12 pens equals the selling price of 10 pens, what is the gain percent?", "20%",
				"Gain of 2 pens on 10 sold: 2/10 = 20%.", "16.67%", "20%", "25%", "18%"),
			mcq("A trader marks goods 40% above cost and allows a 25% discount. What is the result?", "5% profit",
				"1.4 x 0.75 = 1.05 of cost.", "5% loss", "5% profit", "15% profit", "No profit no loss"),
			mcq("Two items are sold for 99 each, one at 10% gain and one at 10% loss. What is the net result?", "1% loss",
				"Equal selling prices with equal gain and loss percentages always give a loss of (10^2)/100 = 1%.",
				"No profit no loss", "1% gain", "1% loss", "2% loss"),
		},
	},
	{
		category: model.CategoryArithmetic,
		topic:    "Time and Work",
		questions: []model.Question{
			mcq("A can finish a job in 10 days and B in 15 days. Together they take?", "6 days",
				"1/10 + 1/15 = 1/6.", "5 days", "6 days", "8 days", "12.5 days"),
			mcq("12 workers build a wall in 8 days. How many days do 16 workers take?", "6 days",
				"Work is 96 worker-days; 96/16 = 6.", "4 days", "6 days", "7 days", "10 days"),
		},
	},
	{
		category: model.CategoryLogicalReasoning,
		topic:    "Number Series",
		questions: []model.Question{
			mcq("Find the next number: 2, 6, 12, 20, 30, ?", "42",
				"Differences are 4, 6, 8, 10, 12.", "40", "42", "44", "36"),
			mcq("Find the next number: 3, 9, 27, 81, ?", "243",
				"Each term is multiplied by 3.", "162", "243", "324", "216"),
			mcq("Find the odd one out: 121, 144, 169, 196, 200", "200",
				"All others are perfect squares.", "144", "169", "196", "200"),
		},
	},
	{
		category: model.CategoryLogicalReasoning,
		topic:    "Blood Relations",
		questions: []model.Question{
			mcq("Pointing to a man, Asha says 'His mother is the only daughter of my mother.' How is Asha related to the man?", "Mother",
				"The only daughter of Asha's mother is Asha herself.", "Sister", "Mother", "Aunt", "Grandmother"),
			mcq("A is B's brother. C is A's father. D is C's mother. How is B related to D?", "Grandchild",
				"B is a child of C, and D is C's mother.", "Son", "Grandchild", "Nephew", "Cannot be determined"),
		},
	},
	{
		category: model.CategoryVerbalReasoning,
		topic:    "Synonyms",
		questions: []model.Question{
			mcq("Choose the word closest in meaning to ABUNDANT.", "Plentiful",
				"Abundant means existing in large quantities.", "Scarce", "Plentiful", "Rare", "Meagre"),
			mcq("Choose the word closest in meaning to CANDID.", "Frank",
				"Candid means truthful and straightforward.", "Frank", "Secretive", "Rude", "Timid"),
		},
	},
	{
		category: model.CategoryVerbalReasoning,
		topic:    "Analogies",
		questions: []model.Question{
			mcq("Book : Author :: Statue : ?", "Sculptor",
				"A sculptor creates a statue as an author creates a book.", "Painter", "Sculptor", "Stone", "Museum"),
		},
	},
	{
		category: model.CategoryNonverbalReasoning,
		topic:    "Mirror Images",
		questions: []model.Question{
			mcq("Which letter looks the same in a vertical mirror?", "A",
				"A is symmetric about its vertical axis.", "A", "B", "C", "D"),
			mcq("Which of these words reads the same in a vertical mirror when written in capitals?", "TOT",
				"T and O are both vertically symmetric.", "TOT", "BOB", "DAD", "NUN"),
		},
	},
	{
		category: model.CategoryNonverbalReasoning,
		topic:    "Pattern Completion",
		questions: []model.Question{
			mcq("A square is rotated 45 degrees each step. After 4 steps, it has turned through how many degrees?", "180",
				"4 x 45 = 180.", "90", "135", "180", "360"),
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.Mongo.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	questionRepo := repository.NewQuestionRepo(db)

	inserted := 0
	for _, seed := range bank {
		// Topics that already have questions are left alone so reruns are harmless
		existing, err := questionRepo.CountByCategoryTopic(ctx, seed.category, seed.topic)
		if err != nil {
			log.Fatalf("Failed to count %s/%s: %v", seed.category, seed.topic, err)
		}
		if existing > 0 {
			fmt.Printf("Skipping %s / %s (%d questions present)\n", seed.category, seed.topic, existing)
			continue
		}

		questions := make([]*model.Question, len(seed.questions))
		for i := range seed.questions {
			q := seed.questions[i]
			q.Category = seed.category
			q.Topic = seed.topic
			questions[i] = &q
		}
		if err := questionRepo.InsertMany(ctx, questions); err != nil {
			log.Fatalf("Failed to insert %s/%s: %v", seed.category, seed.topic, err)
		}
		inserted += len(questions)
	}

	fmt.Printf("Successfully seeded %d aptitude questions into '%s'\n", inserted, cfg.Mongo.Database)
}
