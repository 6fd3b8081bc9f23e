package service

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

var pageValidate = validator.New()

type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTALabel string `json:"ctaLabel"`
	CTAURL   string `json:"ctaUrl"`
	ImageURL string `json:"imageUrl"`
}

type Testimonial struct {
	Quote     string `json:"quote" validate:"required"`
	Author    string `json:"author" validate:"required"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatarUrl" validate:"omitempty,url"`
}

type GalleryImage struct {
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption"`
}

type Founder struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photoUrl"`
}

type Partner struct {
	Name    string `json:"name" validate:"required"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url"`
	URL     string `json:"url" validate:"omitempty,url"`
}

type PartnerTier struct {
	Tier     string    `json:"tier" validate:"required"`
	Partners []Partner `json:"partners"`
}

type TeamMember struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role"`
	PhotoURL string `json:"photoUrl" validate:"omitempty,url"`
	Bio      string `json:"bio"`
}

// swagger:model HomePage
type HomePage struct {
	Hero         Hero           `json:"hero"`
	Mission      Section        `json:"mission"`
	Vision       Section        `json:"vision"`
	Testimonials []Testimonial  `json:"testimonials"`
	Gallery      []GalleryImage `json:"gallery"`
	Founder      Founder        `json:"founder"`
	Partners     []PartnerTier  `json:"partners"`
}

// swagger:model AboutPage
type AboutPage struct {
	Story   Section      `json:"story"`
	Mission Section      `json:"mission"`
	Vision  Section      `json:"vision"`
	Founder Founder      `json:"founder"`
	Team    []TeamMember `json:"team"`
}

func defaultHomePage() HomePage {
	return HomePage{
		Hero: Hero{
			Title:    "Learning for everyone",
			Subtitle: "Free and low-cost courses from our community of educators.",
			CTALabel: "Browse courses",
			CTAURL:   "/courses",
		},
		Mission:      Section{Title: "Our Mission", Body: "We make practical education accessible to every learner."},
		Vision:       Section{Title: "Our Vision", Body: "A world where opportunity is not limited by access to learning."},
		Testimonials: []Testimonial{},
		Gallery:      []GalleryImage{},
		Founder:      Founder{Name: "Our Founder", Title: "Founder"},
		Partners:     []PartnerTier{},
	}
}

func defaultAboutPage() AboutPage {
	return AboutPage{
		Story:   Section{Title: "Our Story", Body: "We started as a small group of volunteers teaching in our neighbourhood."},
		Mission: Section{Title: "Our Mission", Body: "We make practical education accessible to every learner."},
		Vision:  Section{Title: "Our Vision", Body: "A world where opportunity is not limited by access to learning."},
		Founder: Founder{Name: "Our Founder", Title: "Founder"},
		Team:    []TeamMember{},
	}
}

// pageSchemas maps a page slug to its decoder. Unknown slugs have no page.
var pageSchemas = map[string]func(raw []byte) any{
	"home": func(raw []byte) any {
		return decodePage(raw, defaultHomePage, normalizeHomePage)
	},
	"about": func(raw []byte) any {
		return decodePage(raw, defaultAboutPage, normalizeAboutPage)
	},
}

// decodePage decodes raw over the defaults. Malformed payloads yield the
// defaults unchanged.
func decodePage[T any](raw []byte, defaults func() T, normalize func(page *T, def T)) T {
	page := defaults()
	if len(raw) == 0 {
		return page
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return defaults()
	}
	normalize(&page, defaults())
	return page
}

func normalizeHomePage(p *HomePage, def HomePage) {
	fillString(&p.Hero.Title, def.Hero.Title)
	fillString(&p.Hero.CTALabel, def.Hero.CTALabel)
	fillString(&p.Hero.CTAURL, def.Hero.CTAURL)
	fillSection(&p.Mission, def.Mission)
	fillSection(&p.Vision, def.Vision)
	fillString(&p.Founder.Name, def.Founder.Name)

	p.Testimonials = validEntries(p.Testimonials, def.Testimonials)
	p.Gallery = validEntries(p.Gallery, def.Gallery)
	p.Partners = validEntries(p.Partners, def.Partners)
	for i := range p.Partners {
		p.Partners[i].Partners = validEntries(p.Partners[i].Partners, []Partner{})
	}
}

func normalizeAboutPage(p *AboutPage, def AboutPage) {
	fillSection(&p.Story, def.Story)
	fillSection(&p.Mission, def.Mission)
	fillSection(&p.Vision, def.Vision)
	fillString(&p.Founder.Name, def.Founder.Name)
	p.Team = validEntries(p.Team, def.Team)
}

func fillString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}

func fillSection(s *Section, def Section) {
	fillString(&s.Title, def.Title)
	fillString(&s.Body, def.Body)
}

// validEntries drops list entries failing their validate tags. A missing
// list takes the default.
func validEntries[T any](items []T, def []T) []T {
	if items == nil {
		return def
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if err := pageValidate.Struct(item); err == nil {
			out = append(out, item)
		}
	}
	return out
}
