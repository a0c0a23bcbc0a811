package fonts

type Font struct {
	Family   string   `json:"family"`
	Variants []string `json:"variants"`
	Category string   `json:"category"`
}

var catalog = []Font{
	{Family: "Roboto", Variants: []string{"300", "400", "500", "700"}, Category: "sans-serif"},
	{Family: "Open Sans", Variants: []string{"300", "400", "600", "700"}, Category: "sans-serif"},
	{Family: "Lato", Variants: []string{"300", "400", "700"}, Category: "sans-serif"},
	{Family: "Montserrat", Variants: []string{"300", "400", "500", "600", "700"}, Category: "sans-serif"},
	{Family: "Source Sans Pro", Variants: []string{"300", "400", "600", "700"}, Category: "sans-serif"},
	{Family: "Poppins", Variants: []string{"300", "400", "500", "600", "700"}, Category: "sans-serif"},
	{Family: "Inter", Variants: []string{"300", "400", "500", "600", "700"}, Category: "sans-serif"},
	{Family: "Playfair Display", Variants: []string{"400", "700"}, Category: "serif"},
	{Family: "Merriweather", Variants: []string{"300", "400", "700"}, Category: "serif"},
	{Family: "Lora", Variants: []string{"400", "700"}, Category: "serif"},
	{Family: "Oswald", Variants: []string{"300", "400", "500", "600", "700"}, Category: "sans-serif"},
	{Family: "Raleway", Variants: []string{"300", "400", "500", "600", "700"}, Category: "sans-serif"},
	{Family: "PT Sans", Variants: []string{"400", "700"}, Category: "sans-serif"},
	{Family: "Nunito", Variants: []string{"300", "400", "600", "700"}, Category: "sans-serif"},
	{Family: "Ubuntu", Variants: []string{"300", "400", "500", "700"}, Category: "sans-serif"},
	{Family: "Work Sans", Variants: []string{"300", "400", "500", "600", "700"}, Category: "sans-serif"},
	{Family: "Quicksand", Variants: []string{"300", "400", "500", "600", "700"}, Category: "sans-serif"},
	{Family: "Josefin Sans", Variants: []string{"300", "400", "600", "700"}, Category: "sans-serif"},
	{Family: "Bebas Neue", Variants: []string{"400"}, Category: "sans-serif"},
	{Family: "Pacifico", Variants: []string{"400"}, Category: "handwriting"},
	{Family: "Dancing Script", Variants: []string{"400", "700"}, Category: "handwriting"},
	{Family: "Great Vibes", Variants: []string{"400"}, Category: "handwriting"},
	{Family: "Abril Fatface", Variants: []string{"400"}, Category: "display"},
	{Family: "Righteous", Variants: []string{"400"}, Category: "display"},
	{Family: "Bangers", Variants: []string{"400"}, Category: "display"},
	{Family: "Fredoka One", Variants: []string{"400"}, Category: "display"},
}

// Catalog returns the curated font list offered to clients.
func Catalog() []Font {
	out := make([]Font, len(catalog))
	for i, f := range catalog {
		f.Variants = append([]string{}, f.Variants...)
		out[i] = f
	}
	return out
}

func Lookup(family string) (Font, bool) {
	for _, f := range catalog {
		if f.Family == family {
			return f, true
		}
	}
	return Font{}, false
}
