// internal/gazetteer/cities.go
package gazetteer

// worldCities is the static gazetteer, major travel destinations by
// air traffic. Title case matches the corrector's normalization.
var worldCities = []string{
	"Abu Dhabi", "Accra", "Addis Ababa", "Adelaide", "Ahmedabad",
	"Algiers", "Amman", "Amsterdam", "Ankara", "Athens",
	"Atlanta", "Auckland", "Austin", "Baghdad", "Baku",
	"Bali", "Baltimore", "Bangalore", "Bangkok", "Barcelona",
	"Beijing", "Beirut", "Belgrade", "Berlin", "Bogota",
	"Boston", "Brasilia", "Bratislava", "Brisbane", "Brussels",
	"Bucharest", "Budapest", "Buenos Aires", "Cairo", "Calgary",
	"Cancun", "Cape Town", "Caracas", "Casablanca", "Charlotte",
	"Chengdu", "Chennai", "Chicago", "Christchurch", "Cologne",
	"Colombo", "Copenhagen", "Dallas", "Damascus", "Dar Es Salaam",
	"Delhi", "Denver", "Detroit", "Dhaka", "Doha",
	"Dubai", "Dublin", "Dusseldorf", "Edinburgh", "Faisalabad",
	"Frankfurt", "Geneva", "Glasgow", "Guadalajara", "Guangzhou",
	"Hamburg", "Hanoi", "Havana", "Helsinki", "Ho Chi Minh City",
	"Hong Kong", "Honolulu", "Houston", "Hyderabad", "Islamabad",
	"Istanbul", "Jakarta", "Jeddah", "Johannesburg", "Karachi",
	"Kathmandu", "Kiev", "Kingston", "Kolkata", "Kuala Lumpur",
	"Kuwait City", "Lagos", "Lahore", "Las Vegas", "Lima",
	"Lisbon", "Liverpool", "London", "Los Angeles", "Luxembourg",
	"Lyon", "Madrid", "Manchester", "Manila", "Marrakech",
	"Marseille", "Melbourne", "Mexico City", "Miami", "Milan",
	"Minneapolis", "Montevideo", "Montreal", "Moscow", "Multan",
	"Mumbai", "Munich", "Muscat", "Nagoya", "Nairobi",
	"Nanjing", "Naples", "Nashville", "New Orleans", "New York",
	"Nice", "Orlando", "Osaka", "Oslo", "Ottawa",
	"Panama City", "Paris", "Perth", "Peshawar", "Philadelphia",
	"Phoenix", "Phuket", "Pittsburgh", "Portland", "Porto",
	"Prague", "Quebec City", "Quito", "Rabat", "Reykjavik",
	"Riga", "Rio De Janeiro", "Riyadh", "Rome", "Rotterdam",
	"San Diego", "San Francisco", "San Jose", "Santiago", "Sao Paulo",
	"Seattle", "Seoul", "Shanghai", "Shenzhen", "Singapore",
	"Sofia", "Stockholm", "Stuttgart", "Sydney", "Taipei",
	"Tallinn", "Tampa", "Tashkent", "Tbilisi", "Tehran",
	"Tel Aviv", "Tokyo", "Toronto", "Toulouse", "Tunis",
	"Valencia", "Vancouver", "Venice", "Vienna", "Vilnius",
	"Warsaw", "Washington", "Wellington", "Zagreb", "Zurich",
}
