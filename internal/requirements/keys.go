package requirements

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify приводит строку к виду lower-case ascii с дефисами вместо разделителей
// "Oil Type (Synthetic?)" -> "oil-type-synthetic"
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingDash = false
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// FinalizeKey вычисляет ключ нового требования: <slug услуги>_<slug label>
// При коллизии с existingKeys добавляется суффикс _2, _3, ...
// Вызывается один раз при создании требования, при обновлении ключ не пересчитывается
func FinalizeKey(label, serviceSlug string, existingKeys []string) (string, error) {
	labelSlug := Slugify(label)
	if labelSlug == "" {
		return "", fmt.Errorf("%w: label %q has no usable characters", ErrEmptyKey, label)
	}

	base := labelSlug
	if prefix := Slugify(serviceSlug); prefix != "" {
		base = prefix + "_" + labelSlug
	}

	taken := make(map[string]struct{}, len(existingKeys))
	for _, k := range existingKeys {
		taken[k] = struct{}{}
	}

	if _, exists := taken[base]; !exists {
		return base, nil
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if _, exists := taken[candidate]; !exists {
			return candidate, nil
		}
	}
}
