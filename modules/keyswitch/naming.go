package keyswitch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// FootprintName builds the file and footprint name, for example
// "Cherry_MX_LED_19.05mm_2.0u_vertical-switch".
func FootprintName(prefix string, led, diode bool, spacingMM, widthU, switchRotation float64, stab *StabiliserSpec) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("_")
	if led {
		b.WriteString("LED_")
	}
	if diode {
		b.WriteString("diode_")
	}
	fmt.Fprintf(&b, "%smm_%su", formatNumber(spacingMM), formatNumber(widthU))

	if switchRotation != 0 {
		b.WriteString(rotationSuffix(switchRotation, "switch"))
	}
	if stab != nil && stab.Rotation != 0 {
		b.WriteString(rotationSuffix(stab.Rotation, "stab"))
	}
	return b.String()
}

// FootprintDescription builds a sentence such as "A Cherry MX footprint,
// 1.0u wide with an in-switch LED and a stabiliser.".
func FootprintDescription(prefix string, led, diode bool, widthU float64, stab *StabiliserSpec) string {
	manufacturer, productCode, _ := strings.Cut(prefix, "_")
	productCode, _, _ = strings.Cut(productCode, "_")
	manufacturer = title(manufacturer)

	article := "A"
	if startsWithVowel(manufacturer) {
		article = "An"
	}

	subject := manufacturer
	if productCode != "" {
		subject += " " + productCode
	}
	desc := fmt.Sprintf("%s %s footprint, %su wide", article, subject, formatNumber(widthU))

	var extras []string
	if led {
		extras = append(extras, "an in-switch LED")
	}
	if diode {
		extras = append(extras, "an in-switch diode")
	}
	if stab != nil {
		if stab.Rotation == 0 {
			extras = append(extras, "a stabiliser")
		} else {
			extras = append(extras, "a "+strings.ToLower(strings.Join(rotationWords(stab.Rotation), " "))+" stabiliser")
		}
	}

	switch n := len(extras); {
	case n > 1:
		desc += " with " + strings.Join(extras[:n-1], ", ") + " and " + extras[n-1]
	case n == 1:
		desc += " with " + extras[0]
	}
	return desc + "."
}

func rotationWords(angle float64) []string {
	if math.Mod(angle, 90) != 0 {
		return []string{formatNumber(angle) + "DEG"}
	}
	var words []string
	if angle == 90 || angle == 270 {
		words = append(words, "vertical")
	}
	if angle == 180 || angle == 270 {
		words = append(words, "flipped")
	}
	return words
}

func rotationSuffix(angle float64, suffix string) string {
	words := rotationWords(angle)
	if len(words) == 0 {
		return ""
	}
	return "_" + strings.Join(words, "-") + "-" + suffix
}

// formatNumber renders a float the way the footprint names have always
// shown it: shortest representation, with ".0" kept for whole numbers.
func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// title upper-cases the first letter of every letter run and lower-cases
// the rest.
func title(s string) string {
	runes := []rune(s)
	prevLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if prevLetter {
				runes[i] = unicode.ToLower(r)
			} else {
				runes[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(runes)
}

func startsWithVowel(s string) bool {
	if s == "" {
		return false
	}
	return strings.ContainsRune("aeiou", unicode.ToLower([]rune(s)[0]))
}
