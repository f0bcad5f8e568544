package analysis

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultSimilarityThreshold is the score above which two strings count as duplicates.
const DefaultSimilarityThreshold = 0.7

// Similarity scores two strings in [0, 1], where 1 means identical.
type Similarity interface {
	Compare(a, b string) float64
}

// SimilarityFunc adapts a plain function to the Similarity interface.
type SimilarityFunc func(a, b string) float64

// Compare implements Similarity.
func (f SimilarityFunc) Compare(a, b string) float64 {
	return f(a, b)
}

type metricSimilarity struct {
	metric strutil.StringMetric
}

func (m metricSimilarity) Compare(a, b string) float64 {
	return strutil.Similarity(a, b, m.metric)
}

// DiceSimilarity scores strings by Sorensen-Dice coefficient over character bigrams.
func DiceSimilarity() Similarity {
	return metricSimilarity{metric: metrics.NewSorensenDice()}
}

// JaroWinklerSimilarity scores strings by Jaro-Winkler distance.
func JaroWinklerSimilarity() Similarity {
	return metricSimilarity{metric: metrics.NewJaroWinkler()}
}

// SimilarityByName returns a named similarity metric. Unknown names return nil.
func SimilarityByName(name string) Similarity {
	switch name {
	case "", "dice", "sorensen-dice":
		return DiceSimilarity()
	case "jaro-winkler":
		return JaroWinklerSimilarity()
	default:
		return nil
	}
}
