package pricing

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// DiscountedPrice returns the unit price after applying the product-level
// discount percentage. No rounding; formatting happens at display time only.
func DiscountedPrice(price, discountPercentage float64) float64 {
	return price - (price*discountPercentage)/100
}

// FormatPrice renders an amount as a US-dollar string, e.g. "$1,234.50".
// Presentation only; never feed the result back into arithmetic.
func FormatPrice(amount float64) string {
	return usd.Sprintf("$%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatDiscountLabel renders a discount percentage as a badge label,
// e.g. "15% OFF".
func FormatDiscountLabel(discountPercentage float64) string {
	return fmt.Sprintf("%d%% OFF", int(math.Round(discountPercentage)))
}

// StarRating returns max booleans, true for each filled star.
func StarRating(rating float64, max int) []bool {
	stars := make([]bool, max)
	filled := int(math.Round(rating))
	for i := range stars {
		stars[i] = i < filled
	}
	return stars
}

// TruncateText shortens text to maxLength runes, appending "..." when cut.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

// Chunk groups items into consecutive slices of the given size; the last
// chunk may be shorter.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}
