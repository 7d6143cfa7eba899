package catalog

import "lingua-tutor/internal/domain"

var vocabulary = map[string][]VocabularyItem{
	"daily-routines": {
		{Word: "wake up", German: "aufwachen", Level: domain.LevelA1, Example: "I wake up at 7 AM."},
		{Word: "breakfast", German: "Frühstück", Level: domain.LevelA1, Example: "I eat breakfast at 8 AM."},
		{Word: "work", German: "Arbeit", Level: domain.LevelA1, Example: "I go to work every day."},
		{Word: "sleep", German: "schlafen", Level: domain.LevelA1, Example: "I sleep at 10 PM."},
		{Word: "routine", German: "Routine", Level: domain.LevelA2, Example: "My morning routine is simple."},
		{Word: "get dressed", German: "sich anziehen", Level: domain.LevelA2, Example: "I get dressed after breakfast."},
		{Word: "commute", German: "pendeln", Level: domain.LevelA2, Example: "My commute takes 30 minutes."},
		{Word: "hectic", German: "hektisch", Level: domain.LevelB1, Example: "My mornings are usually hectic."},
		{Word: "wind down", German: "sich entspannen", Level: domain.LevelB1, Example: "I wind down by reading before bed."},
		{Word: "productive", German: "produktiv", Level: domain.LevelB1, Example: "I feel most productive in the morning."},
		{Word: "juggle", German: "jonglieren (Aufgaben)", Level: domain.LevelB2, Example: "I juggle work and personal life."},
		{Word: "streamline", German: "rationalisieren", Level: domain.LevelB2, Example: "I try to streamline my morning routine."},
		{Word: "ingrained", German: "tief verwurzelt", Level: domain.LevelC1, Example: "These habits are ingrained in my daily life."},
		{Word: "meticulous", German: "akribisch", Level: domain.LevelC1, Example: "I am meticulous about my schedule."},
	},
	"hobbies": {
		{Word: "play", German: "spielen", Level: domain.LevelA1, Example: "I play football."},
		{Word: "read", German: "lesen", Level: domain.LevelA1, Example: "I read books every day."},
		{Word: "watch", German: "schauen", Level: domain.LevelA1, Example: "I watch movies on weekends."},
		{Word: "music", German: "Musik", Level: domain.LevelA1, Example: "I listen to music."},
		{Word: "hobby", German: "Hobby", Level: domain.LevelA2, Example: "My favorite hobby is painting."},
		{Word: "collect", German: "sammeln", Level: domain.LevelA2, Example: "I collect stamps."},
		{Word: "enjoy", German: "genießen", Level: domain.LevelA2, Example: "I enjoy cooking in my free time."},
		{Word: "passion", German: "Leidenschaft", Level: domain.LevelB1, Example: "Photography is my passion."},
		{Word: "unwind", German: "abschalten", Level: domain.LevelB1, Example: "I unwind by playing guitar."},
		{Word: "creative outlet", German: "kreatives Ventil", Level: domain.LevelB1, Example: "Painting is my creative outlet."},
		{Word: "avid", German: "begeistert", Level: domain.LevelB2, Example: "I am an avid reader."},
		{Word: "immerse", German: "eintauchen", Level: domain.LevelB2, Example: "I immerse myself in my hobbies."},
		{Word: "quintessential", German: "typisch", Level: domain.LevelC1, Example: "Reading is the quintessential relaxation activity."},
		{Word: "cultivate", German: "pflegen", Level: domain.LevelC1, Example: "I cultivate various interests."},
	},
	"travel": {
		{Word: "trip", German: "Reise", Level: domain.LevelA1, Example: "I went on a trip to Italy."},
		{Word: "vacation", German: "Urlaub", Level: domain.LevelA1, Example: "I need a vacation."},
		{Word: "beach", German: "Strand", Level: domain.LevelA1, Example: "I love the beach."},
		{Word: "hotel", German: "Hotel", Level: domain.LevelA1, Example: "We stayed at a nice hotel."},
		{Word: "destination", German: "Reiseziel", Level: domain.LevelA2, Example: "Paris is my dream destination."},
		{Word: "sightseeing", German: "Besichtigung", Level: domain.LevelA2, Example: "We went sightseeing in Rome."},
		{Word: "luggage", German: "Gepäck", Level: domain.LevelA2, Example: "I packed my luggage."},
		{Word: "itinerary", German: "Reiseroute", Level: domain.LevelB1, Example: "We planned our itinerary carefully."},
		{Word: "explore", German: "erkunden", Level: domain.LevelB1, Example: "I love to explore new cities."},
		{Word: "backpacking", German: "Rucksackreisen", Level: domain.LevelB1, Example: "I enjoy backpacking through Europe."},
		{Word: "wanderlust", German: "Fernweh", Level: domain.LevelB2, Example: "I have a strong sense of wanderlust."},
		{Word: "immerse yourself", German: "sich vertiefen", Level: domain.LevelB2, Example: "I like to immerse myself in local culture."},
		{Word: "off the beaten path", German: "abseits der Touristenpfade", Level: domain.LevelC1, Example: "I prefer destinations off the beaten path."},
		{Word: "cosmopolitan", German: "weltoffene Stadt", Level: domain.LevelC1, Example: "London is a cosmopolitan city."},
	},
	"food": {
		{Word: "eat", German: "essen", Level: domain.LevelA1, Example: "I eat lunch at noon."},
		{Word: "delicious", German: "lecker", Level: domain.LevelA1, Example: "The food is delicious."},
		{Word: "cook", German: "kochen", Level: domain.LevelA1, Example: "I cook dinner every night."},
		{Word: "restaurant", German: "Restaurant", Level: domain.LevelA1, Example: "We ate at a restaurant."},
		{Word: "recipe", German: "Rezept", Level: domain.LevelA2, Example: "I tried a new recipe."},
		{Word: "ingredients", German: "Zutaten", Level: domain.LevelA2, Example: "I bought the ingredients at the market."},
		{Word: "taste", German: "schmecken", Level: domain.LevelA2, Example: "This tastes great!"},
		{Word: "cuisine", German: "Küche", Level: domain.LevelB1, Example: "I love Italian cuisine."},
		{Word: "savory", German: "herzhaft", Level: domain.LevelB1, Example: "I prefer savory dishes over sweet ones."},
		{Word: "nutritious", German: "nahrhaft", Level: domain.LevelB1, Example: "I try to eat nutritious meals."},
		{Word: "delicacy", German: "Delikatesse", Level: domain.LevelB2, Example: "Sushi is considered a delicacy."},
		{Word: "palate", German: "Gaumen", Level: domain.LevelB2, Example: "You need a refined palate to appreciate this dish."},
		{Word: "culinary", German: "kulinarisch", Level: domain.LevelC1, Example: "I have a passion for culinary arts."},
		{Word: "gastronomic", German: "gastronomisch", Level: domain.LevelC1, Example: "It was a gastronomic experience."},
	},
	"work": {
		{Word: "job", German: "Arbeit", Level: domain.LevelA1, Example: "I have a new job."},
		{Word: "office", German: "Büro", Level: domain.LevelA1, Example: "I work in an office."},
		{Word: "boss", German: "Chef", Level: domain.LevelA1, Example: "My boss is nice."},
		{Word: "meeting", German: "Besprechung", Level: domain.LevelA1, Example: "I have a meeting at 2 PM."},
		{Word: "colleague", German: "Kollege", Level: domain.LevelA2, Example: "My colleagues are friendly."},
		{Word: "deadline", German: "Frist", Level: domain.LevelA2, Example: "I have a deadline tomorrow."},
		{Word: "career", German: "Karriere", Level: domain.LevelA2, Example: "I want to build a good career."},
		{Word: "workload", German: "Arbeitspensum", Level: domain.LevelB1, Example: "My workload is heavy this week."},
		{Word: "promotion", German: "Beförderung", Level: domain.LevelB1, Example: "I received a promotion."},
		{Word: "collaborate", German: "zusammenarbeiten", Level: domain.LevelB1, Example: "We collaborate on projects."},
		{Word: "stakeholder", German: "Interessenvertreter", Level: domain.LevelB2, Example: "We need to consult with stakeholders."},
		{Word: "resilient", German: "belastbar", Level: domain.LevelB2, Example: "You need to be resilient in this field."},
		{Word: "leverage", German: "nutzen", Level: domain.LevelC1, Example: "We can leverage our resources."},
		{Word: "synergy", German: "Synergie", Level: domain.LevelC1, Example: "There is good synergy between teams."},
	},
	"family": {
		{Word: "family", German: "Familie", Level: domain.LevelA1, Example: "I love my family."},
		{Word: "mother", German: "Mutter", Level: domain.LevelA1, Example: "My mother is kind."},
		{Word: "father", German: "Vater", Level: domain.LevelA1, Example: "My father works hard."},
		{Word: "brother", German: "Bruder", Level: domain.LevelA1, Example: "I have one brother."},
		{Word: "relative", German: "Verwandter", Level: domain.LevelA2, Example: "I visited my relatives."},
		{Word: "relationship", German: "Beziehung", Level: domain.LevelA2, Example: "We have a good relationship."},
		{Word: "close-knit", German: "eng verbunden", Level: domain.LevelA2, Example: "We are a close-knit family."},
		{Word: "upbringing", German: "Erziehung", Level: domain.LevelB1, Example: "I had a good upbringing."},
		{Word: "bond", German: "Bindung", Level: domain.LevelB1, Example: "We have a strong bond."},
		{Word: "nurture", German: "pflegen", Level: domain.LevelB1, Example: "Parents nurture their children."},
		{Word: "kinship", German: "Verwandtschaft", Level: domain.LevelB2, Example: "There is a sense of kinship among us."},
		{Word: "estranged", German: "entfremdet", Level: domain.LevelB2, Example: "We became estranged over the years."},
		{Word: "patriarch", German: "Patriarch", Level: domain.LevelC1, Example: "My grandfather is the patriarch of our family."},
		{Word: "filial", German: "kindlich", Level: domain.LevelC1, Example: "I have filial obligations."},
	},
	"health": {
		{Word: "healthy", German: "gesund", Level: domain.LevelA1, Example: "I try to stay healthy."},
		{Word: "exercise", German: "trainieren", Level: domain.LevelA1, Example: "I exercise every day."},
		{Word: "gym", German: "Fitnessstudio", Level: domain.LevelA1, Example: "I go to the gym."},
		{Word: "run", German: "laufen", Level: domain.LevelA1, Example: "I run in the morning."},
		{Word: "fitness", German: "Fitness", Level: domain.LevelA2, Example: "I care about my fitness."},
		{Word: "diet", German: "Ernährung", Level: domain.LevelA2, Example: "I follow a healthy diet."},
		{Word: "strength", German: "Kraft", Level: domain.LevelA2, Example: "I want to build strength."},
		{Word: "well-being", German: "Wohlbefinden", Level: domain.LevelB1, Example: "Exercise improves my well-being."},
		{Word: "stamina", German: "Ausdauer", Level: domain.LevelB1, Example: "I need to improve my stamina."},
		{Word: "wellness", German: "Wellness", Level: domain.LevelB1, Example: "I focus on wellness."},
		{Word: "holistic", German: "ganzheitlich", Level: domain.LevelB2, Example: "I take a holistic approach to health."},
		{Word: "sedentary", German: "sitzend", Level: domain.LevelB2, Example: "A sedentary lifestyle is unhealthy."},
		{Word: "cardiovascular", German: "kardiovaskulär", Level: domain.LevelC1, Example: "I do cardiovascular exercises."},
		{Word: "metabolic", German: "Stoffwechsel-", Level: domain.LevelC1, Example: "It boosts metabolic rate."},
	},
	"entertainment": {
		{Word: "movie", German: "Film", Level: domain.LevelA1, Example: "I watched a good movie."},
		{Word: "song", German: "Lied", Level: domain.LevelA1, Example: "I like this song."},
		{Word: "book", German: "Buch", Level: domain.LevelA1, Example: "I read a book."},
		{Word: "fun", German: "Spaß", Level: domain.LevelA1, Example: "It was fun."},
		{Word: "genre", German: "Genre", Level: domain.LevelA2, Example: "My favorite genre is comedy."},
		{Word: "performance", German: "Aufführung", Level: domain.LevelA2, Example: "The performance was amazing."},
		{Word: "entertaining", German: "unterhaltsam", Level: domain.LevelA2, Example: "The show was very entertaining."},
		{Word: "plot", German: "Handlung", Level: domain.LevelB1, Example: "The movie has an interesting plot."},
		{Word: "captivating", German: "fesselnd", Level: domain.LevelB1, Example: "The story was captivating."},
		{Word: "soundtrack", German: "Soundtrack", Level: domain.LevelB1, Example: "I loved the soundtrack."},
		{Word: "compelling", German: "überzeugend", Level: domain.LevelB2, Example: "The narrative is compelling."},
		{Word: "binge-watch", German: "durchschauen", Level: domain.LevelB2, Example: "I binge-watched the series."},
		{Word: "cinematic", German: "filmisch", Level: domain.LevelC1, Example: "It has cinematic quality."},
		{Word: "nuanced", German: "nuanciert", Level: domain.LevelC1, Example: "The character is nuanced."},
	},
	"current-events": {
		{Word: "news", German: "Nachrichten", Level: domain.LevelA1, Example: "I watch the news."},
		{Word: "world", German: "Welt", Level: domain.LevelA1, Example: "The world is changing."},
		{Word: "important", German: "wichtig", Level: domain.LevelA1, Example: "This is important."},
		{Word: "happen", German: "passieren", Level: domain.LevelA1, Example: "What happened?"},
		{Word: "event", German: "Ereignis", Level: domain.LevelA2, Example: "It was a big event."},
		{Word: "politics", German: "Politik", Level: domain.LevelA2, Example: "I follow politics."},
		{Word: "election", German: "Wahl", Level: domain.LevelA2, Example: "The election is next month."},
		{Word: "issue", German: "Thema", Level: domain.LevelB1, Example: "Climate change is a major issue."},
		{Word: "controversy", German: "Kontroverse", Level: domain.LevelB1, Example: "There is controversy about this topic."},
		{Word: "development", German: "Entwicklung", Level: domain.LevelB1, Example: "This is a new development."},
		{Word: "polarized", German: "polarisiert", Level: domain.LevelB2, Example: "The debate is highly polarized."},
		{Word: "ramification", German: "Auswirkung", Level: domain.LevelB2, Example: "The ramifications are serious."},
		{Word: "geopolitical", German: "geopolitisch", Level: domain.LevelC1, Example: "It has geopolitical implications."},
		{Word: "unprecedented", German: "beispiellos", Level: domain.LevelC1, Example: "This is unprecedented."},
	},
	"future-plans": {
		{Word: "plan", German: "Plan", Level: domain.LevelA1, Example: "I have a plan."},
		{Word: "future", German: "Zukunft", Level: domain.LevelA1, Example: "I think about the future."},
		{Word: "hope", German: "hoffen", Level: domain.LevelA1, Example: "I hope to travel."},
		{Word: "want", German: "wollen", Level: domain.LevelA1, Example: "I want to learn more."},
		{Word: "goal", German: "Ziel", Level: domain.LevelA2, Example: "My goal is to finish this project."},
		{Word: "dream", German: "Traum", Level: domain.LevelA2, Example: "My dream is to own a house."},
		{Word: "achieve", German: "erreichen", Level: domain.LevelA2, Example: "I want to achieve success."},
		{Word: "aspiration", German: "Streben", Level: domain.LevelB1, Example: "I have high aspirations."},
		{Word: "ambition", German: "Ehrgeiz", Level: domain.LevelB1, Example: "She has great ambition."},
		{Word: "envision", German: "sich vorstellen", Level: domain.LevelB1, Example: "I envision a bright future."},
		{Word: "endeavor", German: "Bestreben", Level: domain.LevelB2, Example: "This is a worthwhile endeavor."},
		{Word: "trajectory", German: "Verlauf", Level: domain.LevelB2, Example: "My career trajectory looks promising."},
		{Word: "blueprint", German: "Entwurf", Level: domain.LevelC1, Example: "I have a blueprint for my future."},
		{Word: "culminate", German: "gipfeln", Level: domain.LevelC1, Example: "My efforts will culminate in success."},
	},
}
