package catalog

// Instructor leads a meditation session.
type Instructor struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Meditation is one guided session in the library.
type Meditation struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Duration    string     `json:"duration"`
	ImageURL    string     `json:"imageUrl"`
	Description string     `json:"description"`
	Instructor  Instructor `json:"instructor"`
	Category    string     `json:"category"`
	VideoURL    string     `json:"videoUrl,omitempty"`
}

// Category groups meditations on the library page.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	SessionCount int    `json:"sessionCount"`
}

// Professional is a listing in the care directory.
type Professional struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Specialties []string `json:"specialties"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Catalog bundles the static content served to the client.
type Catalog struct {
	Meditations   []Meditation
	Categories    []Category
	Professionals []Professional
}

// Seed provides the default library and directory.
func Seed() Catalog {
	return Catalog{
		Meditations: []Meditation{
			{
				ID:          "1",
				Title:       "Calm in the Storm",
				Duration:    "5 minutes",
				ImageURL:    "https://images.unsplash.com/photo-1518241353330-0f7941c2d9b5?auto=format&fit=crop&w=500&q=80",
				Description: "When work feels overwhelming, this gentle breathing practice creates a calm center within you. Perfect for quick breaks during a hectic day.",
				Instructor:  Instructor{Name: "Sarah J.", ImageURL: "https://randomuser.me/api/portraits/women/44.jpg"},
				Category:    "anxiety",
			},
			{
				ID:          "2",
				Title:       "Morning Light",
				Duration:    "10 minutes",
				ImageURL:    "https://images.unsplash.com/photo-1529693662653-9d480530a697?auto=format&fit=crop&w=500&q=80",
				Description: "Begin your day with intention and clarity. This practice helps you set a positive tone and stay grounded as you face whatever comes your way.",
				Instructor:  Instructor{Name: "Mark W.", ImageURL: "https://randomuser.me/api/portraits/men/32.jpg"},
				Category:    "focus",
			},
			{
				ID:          "3",
				Title:       "Drifting to Sleep",
				Duration:    "15 minutes",
				ImageURL:    "https://images.unsplash.com/photo-1506126613408-eca07ce68773?auto=format&fit=crop&w=500&q=80",
				Description: "When your mind is racing at bedtime, this gentle meditation helps release the day's tension and prepares your body and mind for restful sleep.",
				Instructor:  Instructor{Name: "Amy C.", ImageURL: "https://randomuser.me/api/portraits/women/68.jpg"},
				Category:    "sleep",
			},
			{
				ID:          "4",
				Title:       "Mountain Serenity",
				Duration:    "8 minutes",
				Description: "A visualization practice that borrows the stillness of a mountain to steady a restless mind.",
				Instructor:  Instructor{Name: "Daniel K."},
				Category:    "mindfulness",
			},
			{
				ID:          "5",
				Title:       "Ocean Waves Mindfulness",
				Duration:    "12 minutes",
				Description: "Follow the rhythm of the waves to anchor your attention and ease anxious thoughts.",
				Instructor:  Instructor{Name: "Emma L."},
				Category:    "anxiety",
			},
			{
				ID:          "6",
				Title:       "Evening Calm Down",
				Duration:    "15 minutes",
				Description: "Unwind after a long day with slow breathing and a gentle body scan.",
				Instructor:  Instructor{Name: "Michael R."},
				Category:    "sleep",
			},
		},
		Categories: []Category{
			{ID: "anxiety", Name: "Anxiety Relief", Icon: "brain", SessionCount: 12},
			{ID: "sleep", Name: "Better Sleep", Icon: "moon", SessionCount: 8},
			{ID: "focus", Name: "Focus & Clarity", Icon: "bullseye", SessionCount: 10},
			{ID: "mindfulness", Name: "Mindfulness", Icon: "heart", SessionCount: 15},
		},
		Professionals: []Professional{
			{
				ID:          "1",
				Name:        "Dr. Sarah Johnson",
				Title:       "Clinical Psychologist",
				Rating:      4.8,
				ReviewCount: 123,
				Specialties: []string{"Anxiety", "Depression", "Work Stress"},
				Description: "Specializes in anxiety, depression, and workplace stress. 10+ years of experience.",
				Tags:        []string{"Anxiety", "Depression", "Work Stress"},
			},
			{
				ID:          "2",
				Name:        "Dr. Michael Chen",
				Title:       "Psychiatrist",
				Rating:      5.0,
				ReviewCount: 87,
				Specialties: []string{"Medication Mgmt", "ADHD", "Mood Disorders"},
				Description: "Specializes in medication management for depression, anxiety, and ADHD.",
				Tags:        []string{"Medication Mgmt", "ADHD", "Mood Disorders"},
			},
			{
				ID:          "3",
				Name:        "Lisa Rodriguez, LMFT",
				Title:       "Family Therapist",
				Rating:      4.2,
				ReviewCount: 56,
				Specialties: []string{"Relationships", "Family", "Life Changes"},
				Description: "Specializes in relationship issues, family conflicts, and life transitions.",
				Tags:        []string{"Relationships", "Family", "Life Changes"},
			},
		},
	}
}
