package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `
shop: Svyaznoy
categories:
  - id: 224
    name: Smartphones
  - id: 15
    name: Accessories
goods:
  - id: 4216292
    category: 224
    model: apple/iphone/xs-max
    name: Smartphone Apple iPhone XS Max 512GB (golden)
    price: 110000.00
    price_rrc: 116990.00
    quantity: 14
    parameters:
      "Screen size (inches)": 6.5
      "Color": golden
  - id: 4216313
    category: 15
    name: Charging cable
    price: 990
    price_rrc: 1190.50
    quantity: 100
`

func TestParseFeed(t *testing.T) {
	feed, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)

	assert.Equal(t, "Svyaznoy", feed.Shop)
	require.Len(t, feed.Categories, 2)
	assert.Equal(t, 224, feed.Categories[0].ID)
	assert.Equal(t, "Smartphones", feed.Categories[0].Name)

	require.Len(t, feed.Goods, 2)
	good := feed.Goods[0]
	assert.Equal(t, 4216292, good.ID)
	assert.Equal(t, 224, good.Category)
	assert.Equal(t, "apple/iphone/xs-max", good.Model)
	assert.Equal(t, 14, good.Quantity)

	// monetary values survive exactly, no float round trip
	price, err := good.Price.Money()
	require.NoError(t, err)
	assert.Equal(t, "110000.00", price.String())
	rrc, err := good.PriceRRC.Money()
	require.NoError(t, err)
	assert.Equal(t, "116990.00", rrc.String())

	// numeric parameter values keep their literal text
	assert.Equal(t, "6.5", good.Parameters["Screen size (inches)"].String())
	assert.Equal(t, "golden", good.Parameters["Color"].String())
}

func TestParseFeed_NotYAML(t *testing.T) {
	_, err := ParseFeed([]byte("{not: [valid"))
	assert.Error(t, err)
}

func TestParseFeed_MissingShop(t *testing.T) {
	_, err := ParseFeed([]byte("categories: []\ngoods: []"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "shop name")
}

func TestParseFeed_BadCategory(t *testing.T) {
	doc := `
shop: Acme
categories:
  - id: 0
    name: Broken
`
	_, err := ParseFeed([]byte(doc))
	assert.Error(t, err)

	doc = `
shop: Acme
categories:
  - id: 3
`
	_, err = ParseFeed([]byte(doc))
	assert.Error(t, err)
}

func TestParseFeed_BadGoods(t *testing.T) {
	base := func(body string) string {
		return "shop: Acme\ncategories:\n  - id: 1\n    name: Cat\ngoods:\n" + body
	}

	cases := map[string]string{
		"missing price": `
  - id: 10
    category: 1
    name: Widget
    price_rrc: 5.00
    quantity: 1
`,
		"malformed price": `
  - id: 10
    category: 1
    name: Widget
    price: abc
    price_rrc: 5.00
    quantity: 1
`,
		"negative quantity": `
  - id: 10
    category: 1
    name: Widget
    price: 4.00
    price_rrc: 5.00
    quantity: -1
`,
		"missing name": `
  - id: 10
    category: 1
    price: 4.00
    price_rrc: 5.00
    quantity: 1
`,
		"negative price": `
  - id: 10
    category: 1
    name: Widget
    price: -4.00
    price_rrc: 5.00
    quantity: 1
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseFeed([]byte(base(body)))
			assert.Error(t, err)
		})
	}
}

func TestParseFeed_ErrorIdentifiesEntry(t *testing.T) {
	doc := `
shop: Acme
categories:
  - id: 1
    name: Cat
goods:
  - id: 10
    category: 1
    name: Widget
    price: 4.00
    price_rrc: 5.00
    quantity: 1
  - id: 11
    category: 1
    name: Broken
    price: oops
    price_rrc: 5.00
    quantity: 1
`
	_, err := ParseFeed([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 2")
	assert.Contains(t, err.Error(), "id 11")
}
