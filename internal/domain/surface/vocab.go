package surface

// Static research vocabularies. These are curated data, not search output:
// coordinates for mappable destinations, visa-category keywords, application
// timelines, and the featured-destination grid.

// Locations maps destination keywords to coordinates.
var Locations = map[string]Location{
	"cyprus":      {Name: "Cyprus", Lat: 35.1264, Lng: 33.4299, Description: "Cyprus - Mediterranean island with favorable tax regime"},
	"nicosia":     {Name: "Nicosia", Lat: 35.1856, Lng: 33.3823, Description: "Nicosia, capital of Cyprus"},
	"lisbon":      {Name: "Lisbon", Lat: 38.7223, Lng: -9.1393, Description: "Lisbon, Portugal - Popular D7 visa destination"},
	"portugal":    {Name: "Portugal", Lat: 39.3999, Lng: -8.2245, Description: "Portugal - D7 visa and NHR tax regime"},
	"porto":       {Name: "Porto", Lat: 41.1579, Lng: -8.6291, Description: "Porto, Portugal - Digital nomad hub"},
	"dubai":       {Name: "Dubai", Lat: 25.2048, Lng: 55.2708, Description: "Dubai, UAE - Tax-free income"},
	"malta":       {Name: "Malta", Lat: 35.9375, Lng: 14.3754, Description: "Malta - EU member, English-speaking"},
	"spain":       {Name: "Spain", Lat: 40.4168, Lng: -3.7038, Description: "Spain - Beckham Law tax benefits"},
	"barcelona":   {Name: "Barcelona", Lat: 41.3874, Lng: 2.1686, Description: "Barcelona, Spain - Popular expat city"},
	"netherlands": {Name: "Netherlands", Lat: 52.3676, Lng: 4.9041, Description: "Netherlands - 30% ruling tax benefit"},
	"amsterdam":   {Name: "Amsterdam", Lat: 52.3676, Lng: 4.9041, Description: "Amsterdam, Netherlands"},
	"greece":      {Name: "Greece", Lat: 37.9838, Lng: 23.7275, Description: "Greece - Digital nomad visa available"},
	"estonia":     {Name: "Estonia", Lat: 59.4370, Lng: 24.7536, Description: "Estonia - E-Residency program"},
}

// VisaCategories maps content keywords to visa category labels.
var VisaCategories = []struct {
	Keyword  string
	Category string
}{
	{"d7 visa", "D7 Passive Income Visa"},
	{"digital nomad", "Digital Nomad Visa"},
	{"golden visa", "Golden Visa (Investment)"},
	{"startup visa", "Startup Visa"},
	{"freelance visa", "Freelance Visa"},
	{"retirement visa", "Retirement Visa"},
	{"work permit", "Work Permit"},
	{"self-employment", "Self-Employment Visa"},
	{"investor visa", "Investor Visa"},
	{"non-habitual resident", "NHR Tax Regime"},
	{"beckham law", "Beckham Law (Spain)"},
	{"30% ruling", "30% Ruling (Netherlands)"},
}

// VisaTimelines maps destination keywords to application timelines.
var VisaTimelines = map[string][]TimelineStep{
	"portugal": {
		{Step: 1, Title: "Gather Documents", Description: "Proof of income, health insurance, criminal record (2-4 weeks)"},
		{Step: 2, Title: "Get NIF & Bank Account", Description: "Portuguese tax number and bank account (1-2 weeks)"},
		{Step: 3, Title: "Submit D7 Application", Description: "Apply at Portuguese consulate (1 day)"},
		{Step: 4, Title: "Wait for Approval", Description: "Processing time (2-4 months)"},
		{Step: 5, Title: "Enter Portugal", Description: "Visa valid for 120 days, apply for residence permit"},
	},
	"cyprus": {
		{Step: 1, Title: "Gather Documents", Description: "Proof of income, health insurance, clean record (2-4 weeks)"},
		{Step: 2, Title: "Submit Application", Description: "Apply at Cyprus embassy or online (1 day)"},
		{Step: 3, Title: "Wait for Approval", Description: "Processing time (1-2 months)"},
		{Step: 4, Title: "Receive Permit", Description: "Digital Nomad Visa valid for 1-3 years"},
	},
	"dubai": {
		{Step: 1, Title: "Eligibility Check", Description: "Verify income requirements ($3,500/month) (1 week)"},
		{Step: 2, Title: "Submit Application", Description: "Apply online via ICA portal (1 day)"},
		{Step: 3, Title: "Medical & Emirates ID", Description: "Complete medical and biometrics (1-2 weeks)"},
		{Step: 4, Title: "Visa Issued", Description: "Remote Work Visa valid for 1 year"},
	},
	"spain": {
		{Step: 1, Title: "Gather Documents", Description: "Proof of income, health insurance, NIE number (2-4 weeks)"},
		{Step: 2, Title: "Submit Application", Description: "Apply at Spanish consulate (1 day)"},
		{Step: 3, Title: "Wait for Approval", Description: "Processing time (1-3 months)"},
		{Step: 4, Title: "Register for Beckham Law", Description: "Optional tax regime for new residents"},
	},
	"malta": {
		{Step: 1, Title: "Gather Documents", Description: "Proof of income (min EUR 2,700/month), health insurance (2-4 weeks)"},
		{Step: 2, Title: "Submit Online Application", Description: "Apply via Residency Malta portal (1 day)"},
		{Step: 3, Title: "Wait for Approval", Description: "Processing time (4-6 weeks)"},
		{Step: 4, Title: "Receive Permit", Description: "Nomad Residence Permit valid for 1 year"},
	},
}

// Featured is the curated featured-destination grid.
var Featured = []FeaturedDestination{
	{Name: "Portugal", Image: "/destinations/portugal.jpg", Highlight: "D7 Visa & NHR Tax Regime", Description: "Popular for digital nomads and retirees"},
	{Name: "Cyprus", Image: "/destinations/cyprus.jpg", Highlight: "12.5% Corporate Tax", Description: "Mediterranean lifestyle with EU membership"},
	{Name: "Dubai", Image: "/destinations/dubai.jpg", Highlight: "0% Income Tax", Description: "Tax-free income and modern infrastructure"},
}
