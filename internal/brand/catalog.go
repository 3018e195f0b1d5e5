package brand

// catalog is the built-in brand table for the Safety Products Global family.
var catalog = map[string]*Config{
	"slice": {
		Name:            "slice",
		DisplayName:     "Slice",
		PrimaryDomain:   "sliceproducts.com",
		BlogURL:         "https://blog.sliceproducts.com",
		RSSFeedURL:      "https://blog.sliceproducts.com/rss.xml",
		StyleSourceType: StyleSourceBlog,
		StyleSourceURL:  "https://blog.sliceproducts.com",
		ProductCategories: []string{
			"ceramic blades", "safety knives", "box cutters", "craft knives", "utility knives",
		},
		InternalLinkTargets: []string{
			"https://sliceproducts.com/collections/",
			"https://sliceproducts.com/pages/",
			"https://blog.sliceproducts.com/",
		},
		PrimaryKeywords: []string{
			"ceramic blade", "safety knife", "finger-friendly blade", "safety cutter", "ceramic safety blade",
		},
		IndustryTerms: []string{
			"workplace safety", "OSHA", "cut injuries", "ergonomic tools", "PPE", "hand safety",
		},
		ToneKeywords: []string{"innovative", "safety-conscious", "premium", "professional"},
		AvoidTerms:   []string{"cheap", "disposable", "basic"},
		Tagline:      "The Safer Choice",
		ValuePropositions: []string{
			"Ceramic blades last 11x longer than steel",
			"Finger-Friendly blade technology",
			"Award-winning safety design",
		},
	},
	"klever": {
		Name:               "klever",
		DisplayName:        "Klever Innovations",
		PrimaryDomain:      "kleverinnovations.net",
		StyleSourceType:    StyleSourceParent,
		StyleSourceURL:     "https://blog.sliceproducts.com",
		FallbackStyleGuide: kleverFallbackGuide,
		ProductCategories: []string{
			"concealed blade cutters", "safety cutters", "box cutters", "disposable cutters", "replaceable blade cutters",
		},
		InternalLinkTargets: []string{
			"https://kleverinnovations.net/products/",
			"https://kleverinnovations.net/collections/",
		},
		PrimaryKeywords: []string{
			"concealed blade", "safety cutter", "American made safety knife", "industrial cutter", "warehouse safety cutter",
		},
		IndustryTerms: []string{
			"warehouse safety", "distribution center", "packaging", "industrial safety", "workplace injury prevention", "OSHA compliance",
		},
		ToneKeywords: []string{"American-made", "durable", "industrial-strength", "reliable", "proven"},
		AvoidTerms:   []string{"foreign", "imported", "cheap", "flimsy"},
		Tagline:      "American Innovation. Proven Safety.",
		ValuePropositions: []string{
			"100% American made",
			"Concealed blade technology",
			"Trusted by Fortune 500 companies",
		},
	},
	"phc": {
		Name:               "phc",
		DisplayName:        "Pacific Handy Cutter",
		PrimaryDomain:      "phcsafety.com",
		StyleSourceType:    StyleSourceParent,
		StyleSourceURL:     "https://blog.sliceproducts.com",
		FallbackStyleGuide: phcFallbackGuide,
		ProductCategories: []string{
			"safety knives", "utility knives", "concealed cutters", "bladeless cutters", "rescue tools",
		},
		InternalLinkTargets: []string{
			"https://phcsafety.com/products/",
			"https://phcsafety.com/collections/",
		},
		PrimaryKeywords: []string{
			"safety knife", "multi-function cutter", "rescue tool", "smart retract knife", "auto retract safety knife",
		},
		IndustryTerms: []string{
			"grocery safety", "retail safety", "foodservice safety", "emergency response", "safety compliance", "workplace injury prevention",
		},
		ToneKeywords: []string{"versatile", "professional-grade", "safety-certified", "market-leading", "trusted"},
		AvoidTerms:   []string{"amateur", "basic", "unproven"},
		Tagline:      "Safety by Design",
		ValuePropositions: []string{
			"80% market share in grocery/retail",
			"Multi-functional design",
			"Industry-leading safety features",
			"Proven 70-85% injury reduction",
		},
	},
}

const kleverFallbackGuide = `## Klever Innovations Brand Voice Guidelines

### Core Brand Identity
- American-made pride and quality craftsmanship
- Industrial strength and proven durability
- Safety-first engineering philosophy

### Tone & Voice
- Professional and authoritative
- Direct and no-nonsense communication
- Emphasizes reliability, trust, and proven results
- Highlights American manufacturing excellence

### Content Focus Areas
- Concealed blade safety benefits and injury prevention
- American manufacturing quality and standards
- Industrial, warehouse, and distribution center applications
- Cost savings through durability and reduced replacements
- OSHA compliance and workplace safety regulations

### Key Messaging Points
- "Safety is job one"
- Made in USA quality assurance
- Trusted by major brands and corporations
- Proven injury reduction statistics

### Writing Guidelines
- Use data and statistics to support claims
- Include real-world industrial applications
- Reference safety certifications and compliance
- Emphasize long-term value over initial cost`

const phcFallbackGuide = `## Pacific Handy Cutter Brand Voice Guidelines

### Core Brand Identity
- Industry-leading safety innovation
- Multi-functional versatility
- Professional-grade quality and reliability
- Market leadership in grocery and retail

### Tone & Voice
- Expert and knowledgeable
- Solution-oriented approach
- Safety-focused messaging
- Data-driven credibility

### Content Focus Areas
- Multi-tool capabilities and versatility
- Safety certifications and compliance standards
- Industry-specific applications (grocery, retail, foodservice)
- ROI and cost-benefit analysis of safety investments
- Injury reduction statistics and case studies

### Key Messaging Points
- 80% market share among U.S. grocery/retail stores
- Trusted by Walmart, Kroger, Albertsons, Walgreens
- Laceration injuries cost employers $46,000 per injury
- 70-85% injury reduction rates documented

### Writing Guidelines
- Lead with safety ROI and business impact
- Include customer testimonials and case studies
- Reference specific industry applications
- Emphasize professional training and support services
- Highlight market leadership and proven track record`
