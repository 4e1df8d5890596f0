package dashboard

// Coordinates is a fixed representative point for a country, used in place
// of per-event geocoding.
type Coordinates struct {
	Lat float64
	Lon float64
}

// countryAliases folds known upstream naming variants onto the centroid
// table's canonical names before lookup. Exact match only.
var countryAliases = map[string]string{
	"United States of America":                "United States",
	"Viet Nam":                                "Vietnam",
	"Syrian Arab Republic":                    "Syria",
	"Iran (Islamic Republic of)":              "Iran",
	"Lao People's Democratic Republic":        "Laos",
	"Democratic People's Republic of Korea":   "North Korea",
	"Republic of Korea":                       "South Korea",
	"Russian Federation":                      "Russia",
	"Bolivia (Plurinational State of)":        "Bolivia",
	"Venezuela (Bolivarian Republic of)":      "Venezuela",
	"United Republic of Tanzania":             "Tanzania",
	"Democratic Republic of the Congo":        "DR Congo",
	"Congo, The Democratic Republic of the":   "DR Congo",
	"Micronesia (Federated States of)":        "Micronesia",
	"occupied Palestinian territory":          "Palestine",
	"Türkiye":                                 "Turkey",
	"Republic of Moldova":                     "Moldova",
	"Brunei Darussalam":                       "Brunei",
	"Cabo Verde":                              "Cape Verde",
	"Timor-Leste":                             "East Timor",
	"Côte d'Ivoire":                           "Ivory Coast",
	"United Kingdom of Great Britain and Northern Ireland": "United Kingdom",
}

// countryCentroids maps canonical country names to representative
// coordinates. Records whose country resolves to no entry are dropped from
// map output.
var countryCentroids = map[string]Coordinates{
	"Afghanistan":      {33.94, 67.71},
	"Algeria":          {28.03, 1.66},
	"Angola":           {-11.20, 17.87},
	"Argentina":        {-38.42, -63.62},
	"Australia":        {-25.27, 133.78},
	"Bangladesh":       {23.68, 90.36},
	"Bolivia":          {-16.29, -63.59},
	"Brazil":           {-14.24, -51.93},
	"Brunei":           {4.54, 114.73},
	"Burkina Faso":     {12.24, -1.56},
	"Burundi":          {-3.37, 29.92},
	"Cambodia":         {12.57, 104.99},
	"Cameroon":         {7.37, 12.35},
	"Canada":           {56.13, -106.35},
	"Cape Verde":       {16.00, -24.01},
	"Chad":             {15.45, 18.73},
	"Chile":            {-35.68, -71.54},
	"China":            {35.86, 104.20},
	"Colombia":         {4.57, -74.30},
	"Cuba":             {21.52, -77.78},
	"DR Congo":         {-4.04, 21.76},
	"East Timor":       {-8.87, 125.73},
	"Ecuador":          {-1.83, -78.18},
	"Egypt":            {26.82, 30.80},
	"El Salvador":      {13.79, -88.90},
	"Ethiopia":         {9.15, 40.49},
	"Fiji":             {-17.71, 178.07},
	"France":           {46.23, 2.21},
	"Germany":          {51.17, 10.45},
	"Greece":           {39.07, 21.82},
	"Guatemala":        {15.78, -90.23},
	"Haiti":            {18.97, -72.29},
	"Honduras":         {15.20, -86.24},
	"India":            {20.59, 78.96},
	"Indonesia":        {-0.79, 113.92},
	"Iran":             {32.43, 53.69},
	"Iraq":             {33.22, 43.68},
	"Italy":            {41.87, 12.57},
	"Ivory Coast":      {7.54, -5.55},
	"Japan":            {36.20, 138.25},
	"Kenya":            {-0.02, 37.91},
	"Laos":             {19.86, 102.50},
	"Lebanon":          {33.85, 35.86},
	"Libya":            {26.34, 17.23},
	"Madagascar":       {-18.77, 46.87},
	"Malawi":           {-13.25, 34.30},
	"Malaysia":         {4.21, 101.98},
	"Mali":             {17.57, -4.00},
	"Mexico":           {23.63, -102.55},
	"Micronesia":       {7.43, 150.55},
	"Moldova":          {47.41, 28.37},
	"Mongolia":         {46.86, 103.85},
	"Morocco":          {31.79, -7.09},
	"Mozambique":       {-18.67, 35.53},
	"Myanmar":          {21.91, 95.96},
	"Nepal":            {28.39, 84.12},
	"New Zealand":      {-40.90, 174.89},
	"Nicaragua":        {12.87, -85.21},
	"Niger":            {17.61, 8.08},
	"Nigeria":          {9.08, 8.68},
	"North Korea":      {40.34, 127.51},
	"Pakistan":         {30.38, 69.35},
	"Palestine":        {31.95, 35.23},
	"Panama":           {8.54, -80.78},
	"Papua New Guinea": {-6.31, 143.96},
	"Peru":             {-9.19, -75.02},
	"Philippines":      {12.88, 121.77},
	"Russia":           {61.52, 105.32},
	"Rwanda":           {-1.94, 29.87},
	"Somalia":          {5.15, 46.20},
	"South Africa":     {-30.56, 22.94},
	"South Korea":      {35.91, 127.77},
	"South Sudan":      {6.88, 31.31},
	"Spain":            {40.46, -3.75},
	"Sri Lanka":        {7.87, 80.77},
	"Sudan":            {12.86, 30.22},
	"Syria":            {34.80, 38.99},
	"Tanzania":         {-6.37, 34.89},
	"Thailand":         {15.87, 100.99},
	"Tonga":            {-21.18, -175.20},
	"Turkey":           {38.96, 35.24},
	"Uganda":           {1.37, 32.29},
	"Ukraine":          {48.38, 31.17},
	"United Kingdom":   {55.38, -3.44},
	"United States":    {37.09, -95.71},
	"Vanuatu":          {-15.38, 166.96},
	"Venezuela":        {6.42, -66.59},
	"Vietnam":          {14.06, 108.28},
	"Yemen":            {15.55, 48.52},
	"Zambia":           {-13.13, 27.85},
	"Zimbabwe":         {-19.02, 29.15},
}

// resolveCountry maps an upstream country name through the alias table into
// the centroid table. The second return reports whether the name resolved.
func resolveCountry(name string) (Coordinates, bool) {
	if canonical, ok := countryAliases[name]; ok {
		name = canonical
	}
	c, ok := countryCentroids[name]
	return c, ok
}
