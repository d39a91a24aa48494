// internal/services/mutations.go
package services

import (
	"dario.cat/mergo"

	"github.com/javajoker/draft-backend/internal/models"
)

// appendUnique appends every item not already present, keeping the existing
// order and the first occurrence of each incoming item.
func appendUnique[T comparable](existing, incoming []T) []T {
	seen := make(map[T]struct{}, len(existing)+len(incoming))
	out := make([]T, 0, len(existing)+len(incoming))
	for _, item := range existing {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	for _, item := range incoming {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func removeItems[T comparable](existing, remove []T) []T {
	drop := make(map[T]struct{}, len(remove))
	for _, item := range remove {
		drop[item] = struct{}{}
	}
	out := make([]T, 0, len(existing))
	for _, item := range existing {
		if _, ok := drop[item]; !ok {
			out = append(out, item)
		}
	}
	return out
}

// mergeVariations unions values into variations matched by name and appends
// unknown names as new entries.
func mergeVariations(existing, incoming []models.Variation) []models.Variation {
	out := models.CloneVariations(existing)
	if out == nil {
		out = []models.Variation{}
	}
	index := make(map[string]int, len(out))
	for i, v := range out {
		index[v.Name] = i
	}

	for _, v := range incoming {
		if i, ok := index[v.Name]; ok {
			out[i].Values = appendUnique(out[i].Values, v.Values)
			continue
		}
		index[v.Name] = len(out)
		out = append(out, models.Variation{Name: v.Name, Values: appendUnique(nil, v.Values)})
	}
	return out
}

// mergeShippingPrices overwrites entries matched by country and appends new
// countries.
func mergeShippingPrices(existing, incoming []models.ShippingPrice) []models.ShippingPrice {
	out := append([]models.ShippingPrice{}, existing...)
	index := make(map[models.CountryCode]int, len(out))
	for i, sp := range out {
		index[sp.CountryCode] = i
	}

	for _, sp := range incoming {
		if sp.CurrencyCode == "" {
			sp.CurrencyCode = models.DefaultCurrencyCode
		}
		if i, ok := index[sp.CountryCode]; ok {
			out[i] = sp
			continue
		}
		index[sp.CountryCode] = len(out)
		out = append(out, sp)
	}
	return out
}

// mergeSpecifications is a shallow merge where incoming keys win.
func mergeSpecifications(existing, incoming map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	if err := mergo.Merge(&merged, incoming, mergo.WithOverride); err != nil {
		return nil, err
	}
	return merged, nil
}

// removeVariationOptions strips values from the named variations and drops
// any variation left without values.
func removeVariationOptions(existing, remove []models.Variation) []models.Variation {
	strip := make(map[string][]string, len(remove))
	for _, v := range remove {
		strip[v.Name] = append(strip[v.Name], v.Values...)
	}

	out := make([]models.Variation, 0, len(existing))
	for _, v := range existing {
		values, ok := strip[v.Name]
		if !ok {
			out = append(out, models.Variation{Name: v.Name, Values: append([]string{}, v.Values...)})
			continue
		}
		remaining := removeItems(v.Values, values)
		if len(remaining) == 0 {
			continue
		}
		out = append(out, models.Variation{Name: v.Name, Values: remaining})
	}
	return out
}

func removeVariationTypes(existing []models.Variation, names []string) []models.Variation {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	out := make([]models.Variation, 0, len(existing))
	for _, v := range existing {
		if _, ok := drop[v.Name]; !ok {
			out = append(out, v)
		}
	}
	return out
}

func removeShippingPrices(existing []models.ShippingPrice, countries []models.CountryCode) []models.ShippingPrice {
	drop := make(map[models.CountryCode]struct{}, len(countries))
	for _, c := range countries {
		drop[c] = struct{}{}
	}
	out := make([]models.ShippingPrice, 0, len(existing))
	for _, sp := range existing {
		if _, ok := drop[sp.CountryCode]; !ok {
			out = append(out, sp)
		}
	}
	return out
}

func removeSpecificationKeys(existing map[string]string, keys []string) map[string]string {
	out := make(map[string]string, len(existing))
	for k, v := range existing {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
