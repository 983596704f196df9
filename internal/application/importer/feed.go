package importer

import (
	"fmt"
	"strings"

	"github.com/retailhub/backend/internal/domain/shared"
	"github.com/retailhub/backend/internal/domain/shared/valueobject"
	"gopkg.in/yaml.v3"
)

// FeedAmount is a monetary amount as it appears in a feed document. It keeps
// the literal scalar text so "116990.00" survives decoding without any float
// round trip.
type FeedAmount struct {
	raw string
}

// UnmarshalYAML implements yaml.Unmarshaler
func (a *FeedAmount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("amount must be a scalar, got %s", node.Tag)
	}
	a.raw = node.Value
	return nil
}

// IsSet returns true when the feed supplied a value
func (a FeedAmount) IsSet() bool {
	return a.raw != ""
}

// Money parses the amount into a validated Money value
func (a FeedAmount) Money() (valueobject.Money, error) {
	return valueobject.NewMoneyFromString(a.raw)
}

// FeedValue is an attribute value scalar; feeds mix strings and numbers, so
// the literal text is kept as-is.
type FeedValue struct {
	raw string
}

// UnmarshalYAML implements yaml.Unmarshaler
func (v *FeedValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("parameter value must be a scalar, got %s", node.Tag)
	}
	v.raw = node.Value
	return nil
}

// String returns the literal scalar text
func (v FeedValue) String() string {
	return v.raw
}

// FeedCategory is one declared category in a feed document
type FeedCategory struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// FeedGood is one goods entry in a feed document
type FeedGood struct {
	ID         int                  `yaml:"id"`
	Category   int                  `yaml:"category"`
	Name       string               `yaml:"name"`
	Model      string               `yaml:"model"`
	Quantity   int                  `yaml:"quantity"`
	Price      FeedAmount           `yaml:"price"`
	PriceRRC   FeedAmount           `yaml:"price_rrc"`
	Parameters map[string]FeedValue `yaml:"parameters"`
}

// Feed is one shop's full catalog for a single import run
type Feed struct {
	Shop       string         `yaml:"shop"`
	Categories []FeedCategory `yaml:"categories"`
	Goods      []FeedGood     `yaml:"goods"`
}

// ParseFeed decodes and validates a YAML feed document. Validation failures
// identify the first offending entry so a whole-run abort is actionable.
func ParseFeed(doc []byte) (*Feed, error) {
	var feed Feed
	if err := yaml.Unmarshal(doc, &feed); err != nil {
		return nil, shared.NewDomainError("INVALID_FEED", fmt.Sprintf("Feed document is not valid YAML: %v", err))
	}
	if err := feed.Validate(); err != nil {
		return nil, err
	}
	return &feed, nil
}

// Validate checks the structural requirements of the feed
func (f *Feed) Validate() error {
	if strings.TrimSpace(f.Shop) == "" {
		return shared.NewDomainError("INVALID_FEED", "Feed is missing the shop name")
	}

	declared := make(map[int]struct{}, len(f.Categories))
	for i, c := range f.Categories {
		if c.ID <= 0 {
			return feedEntryError("categories", i, c.ID, "category id must be a positive integer")
		}
		if strings.TrimSpace(c.Name) == "" {
			return feedEntryError("categories", i, c.ID, "category name is required")
		}
		declared[c.ID] = struct{}{}
	}

	for i, g := range f.Goods {
		if g.ID <= 0 {
			return feedEntryError("goods", i, g.ID, "goods id must be a positive integer")
		}
		if g.Category <= 0 {
			return feedEntryError("goods", i, g.ID, "goods category id must be a positive integer")
		}
		if strings.TrimSpace(g.Name) == "" {
			return feedEntryError("goods", i, g.ID, "goods name is required")
		}
		if g.Quantity < 0 {
			return feedEntryError("goods", i, g.ID, "quantity cannot be negative")
		}
		if !g.Price.IsSet() {
			return feedEntryError("goods", i, g.ID, "price is required")
		}
		if !g.PriceRRC.IsSet() {
			return feedEntryError("goods", i, g.ID, "price_rrc is required")
		}
		for _, amount := range []FeedAmount{g.Price, g.PriceRRC} {
			money, err := amount.Money()
			if err != nil {
				return feedEntryError("goods", i, g.ID, "malformed monetary value")
			}
			if money.IsNegative() {
				return feedEntryError("goods", i, g.ID, "monetary value cannot be negative")
			}
		}
		for name := range g.Parameters {
			if strings.TrimSpace(name) == "" {
				return feedEntryError("goods", i, g.ID, "parameter name cannot be empty")
			}
		}
	}

	return nil
}

func feedEntryError(section string, index, externalID int, msg string) error {
	return shared.NewDomainError("INVALID_FEED",
		fmt.Sprintf("Feed %s entry %d (id %d): %s", section, index+1, externalID, msg))
}
