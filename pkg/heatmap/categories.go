package heatmap

type Category string

const (
	CategoryLayer1           = Category("Layer 1")
	CategoryLayer2           = Category("Layer 2")
	CategoryMeme             = Category("Meme Coins")
	CategoryDefi             = Category("DeFi & Utility")
	CategoryInfrastructure   = Category("Infrastructure")
	CategoryInteroperability = Category("Interoperability")
	CategoryNftGaming        = Category("NFT & Gaming")
	CategoryIndicesFx        = Category("Indices & FX")
	CategoryPayment          = Category("Payment")
	CategoryOther            = Category("Other")
)

// Categories lists every bucket in display order; zero-pair buckets still
// report a 0 average rather than disappearing.
var Categories = []Category{
	CategoryLayer1,
	CategoryLayer2,
	CategoryMeme,
	CategoryDefi,
	CategoryInfrastructure,
	CategoryInteroperability,
	CategoryNftGaming,
	CategoryIndicesFx,
	CategoryPayment,
	CategoryOther,
}

// Hand-maintained disjoint taxonomy sets; classification is first match in
// the order below, defaulting to Other.
var categorySets = []struct {
	category Category
	pairs    map[string]bool
}{
	{CategoryLayer1, map[string]bool{
		"BTC/USD": true, "ETH/USD": true, "SOL/USD": true, "AVAX/USD": true,
		"NEAR/USD": true,
	}},
	{CategoryLayer2, map[string]bool{
		"ARB/USD": true, "OP/USD": true, "MATIC/USD": true,
	}},
	{CategoryMeme, map[string]bool{
		"DOGE/USD": true, "PEPE/USD": true, "SHIB/USD": true,
	}},
	{CategoryDefi, map[string]bool{
		"UNI/USD": true, "GMX/USD": true,
	}},
	{CategoryInfrastructure, map[string]bool{
		"LINK/USD": true,
	}},
	{CategoryInteroperability, map[string]bool{
		"ATOM/USD": true, "DOT/USD": true,
	}},
	{CategoryNftGaming, map[string]bool{
		"APE/USD": true,
	}},
	{CategoryIndicesFx, map[string]bool{
		"USD/JPY": true, "EUR/USD": true, "GBP/USD": true, "XAU/USD": true,
	}},
	{CategoryPayment, map[string]bool{
		"XRP/USD": true, "LTC/USD": true,
	}},
}

// Classify assigns a pair to exactly one category.
func Classify(pair string) Category {
	for _, set := range categorySets {
		if set.pairs[pair] {
			return set.category
		}
	}
	return CategoryOther
}
