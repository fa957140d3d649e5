package names

// DefaultPools returns the built-in place names, keyed by culture.
func DefaultPools() map[string][]string {
	return map[string][]string{
		"China":          {"Shanghai", "Beijing", "Chongqing", "Tianjin", "Guangzhou", "Shenzhen", "Chengdu", "Nanjing", "Wuhan", "Xi'an", "Hangzhou", "Harbin", "Suzhou", "Qingdao", "Dalian", "Kunming"},
		"India":          {"Mumbai", "Delhi", "Bengaluru", "Hyderabad", "Ahmedabad", "Chennai", "Kolkata", "Surat", "Pune", "Jaipur", "Lucknow", "Kanpur", "Nagpur", "Indore", "Bhopal", "Patna"},
		"United States":  {"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego", "Dallas", "Austin", "Seattle", "Denver", "Boston", "Portland", "Atlanta", "Miami"},
		"Indonesia":      {"Jakarta", "Surabaya", "Bandung", "Medan", "Semarang", "Makassar", "Palembang", "Depok", "Tangerang", "Padang", "Malang", "Denpasar"},
		"Pakistan":       {"Karachi", "Lahore", "Faisalabad", "Rawalpindi", "Multan", "Hyderabad", "Peshawar", "Quetta", "Islamabad", "Sialkot", "Gujranwala", "Bahawalpur"},
		"Nigeria":        {"Lagos", "Kano", "Ibadan", "Abuja", "Port Harcourt", "Benin City", "Kaduna", "Maiduguri", "Zaria", "Aba", "Jos", "Ilorin"},
		"Brazil":         {"São Paulo", "Rio de Janeiro", "Brasília", "Salvador", "Fortaleza", "Belo Horizonte", "Manaus", "Curitiba", "Recife", "Porto Alegre", "Belém", "Goiânia"},
		"Bangladesh":     {"Dhaka", "Chittagong", "Khulna", "Rajshahi", "Sylhet", "Rangpur", "Comilla", "Mymensingh", "Barisal", "Narayanganj", "Gazipur", "Bogra"},
		"Russia":         {"Moscow", "Saint Petersburg", "Novosibirsk", "Yekaterinburg", "Kazan", "Nizhny Novgorod", "Chelyabinsk", "Samara", "Omsk", "Rostov", "Ufa", "Krasnoyarsk", "Vladivostok", "Irkutsk"},
		"Mexico":         {"Mexico City", "Guadalajara", "Monterrey", "Puebla", "Tijuana", "León", "Juárez", "Zapopan", "Mérida", "Cancún", "Querétaro", "Oaxaca"},
		"Japan":          {"Tokyo", "Yokohama", "Osaka", "Nagoya", "Sapporo", "Fukuoka", "Kobe", "Kyoto", "Kawasaki", "Saitama", "Hiroshima", "Sendai", "Nara", "Kagoshima"},
		"Ethiopia":       {"Addis Ababa", "Dire Dawa", "Mekelle", "Gondar", "Adama", "Hawassa", "Bahir Dar", "Jimma", "Dessie", "Harar", "Jijiga", "Shashemene"},
		"Egypt":          {"Cairo", "Alexandria", "Giza", "Shubra El Kheima", "Port Said", "Suez", "Luxor", "Aswan", "Mansoura", "Tanta", "Asyut", "Ismailia"},
		"Germany":        {"Berlin", "Hamburg", "Munich", "Cologne", "Frankfurt", "Stuttgart", "Düsseldorf", "Leipzig", "Dortmund", "Essen", "Bremen", "Dresden", "Hanover", "Nuremberg"},
		"United Kingdom": {"London", "Birmingham", "Manchester", "Glasgow", "Leeds", "Liverpool", "Newcastle", "Sheffield", "Bristol", "Edinburgh", "Cardiff", "Belfast", "Nottingham", "Leicester"},
		"France":         {"Paris", "Marseille", "Lyon", "Toulouse", "Nice", "Nantes", "Strasbourg", "Montpellier", "Bordeaux", "Lille", "Rennes", "Reims"},
		"Norway":         {"Oslo", "Bergen", "Trondheim", "Stavanger", "Drammen", "Fredrikstad", "Kristiansand", "Tromsø", "Sandnes", "Ålesund", "Bodø", "Hamar"},
		"Chile":          {"Santiago", "Valparaíso", "Concepción", "La Serena", "Antofagasta", "Temuco", "Rancagua", "Talca", "Arica", "Iquique", "Puerto Montt", "Osorno"},
	}
}

// DefaultShipNames returns the built-in starship name pool.
func DefaultShipNames() []string {
	return []string{
		"Endeavour", "Resolute", "Perseverance", "Odyssey", "Meridian",
		"Wayfarer", "Aurora", "Horizon", "Providence", "Tenacity",
		"Serendipity", "Long Patience", "Far Shore", "Quiet Resolve", "Second Dawn",
		"Lodestar", "Equinox", "Valiant", "Harbinger", "Steadfast",
		"Northern Light", "Wanderer", "Covenant", "Halcyon", "Daybreak",
		"Emissary", "Sojourner", "Argosy", "Vanguard", "Kestrel",
		"Albatross", "Tern", "Heron", "Petrel", "Skylark",
		"Good Hope", "Fair Winds", "Open Hand", "Deep Field", "Last Light",
	}
}
