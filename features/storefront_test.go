package features

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/Phirakan/go-storefront/catalog"
	"github.com/Phirakan/go-storefront/models"
	"github.com/Phirakan/go-storefront/storage"
	"github.com/Phirakan/go-storefront/store"
)

type storefrontTestContext struct {
	storage  *storage.Memory
	store    *store.Store
	products map[string]models.Product
	order    []string
	results  []models.Product
}

func (c *storefrontTestContext) reset() {
	c.storage = storage.NewMemory()
	c.store = nil
	c.products = make(map[string]models.Product)
	c.order = nil
	c.results = nil
}

func (c *storefrontTestContext) anEmptyShopperStore() error {
	c.store = store.New(c.storage, store.DefaultKey)
	return c.store.Load(context.Background())
}

func (c *storefrontTestContext) addProduct(id string, price int64, category string, tags []string) {
	c.products[id] = models.Product{
		ID:       id,
		Name:     "Product " + id,
		Slug:     "product-" + strings.ToLower(id),
		Price:    price,
		Category: category,
		Gender:   models.GenderMen,
		Tags:     tags,
		Sizes:    []string{"M", "L", "32"},
		Stock:    10,
	}
	c.order = append(c.order, id)
}

func (c *storefrontTestContext) aProductPricedInCategory(id string, price int, category string) error {
	c.addProduct(id, int64(price), category, nil)
	return nil
}

func (c *storefrontTestContext) aProductPricedInCategoryTagged(id string, price int, category, tag string) error {
	c.addProduct(id, int64(price), category, []string{tag})
	return nil
}

func (c *storefrontTestContext) product(id string) (models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return models.Product{}, fmt.Errorf("unknown product %q", id)
	}
	return p, nil
}

func (c *storefrontTestContext) iAddProductSizeQuantityToTheCart(id, size string, quantity int) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	c.store.AddToCart(p, size, "", quantity)
	return nil
}

func (c *storefrontTestContext) iSetTheQuantityOfProductSizeTo(id, size string, quantity int) error {
	c.store.UpdateCartQuantity(id, size, quantity)
	return nil
}

func (c *storefrontTestContext) iClearTheCart() error {
	c.store.ClearCart()
	return nil
}

func (c *storefrontTestContext) iAddProductToTheWishlist(id string) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	c.store.AddToWishlist(p)
	return nil
}

func (c *storefrontTestContext) iRemoveProductFromTheWishlist(id string) error {
	c.store.RemoveFromWishlist(id)
	return nil
}

func (c *storefrontTestContext) theStoreIsReloadedFromStorage() error {
	return c.anEmptyShopperStore()
}

func (c *storefrontTestContext) theCartHasLines(n int) error {
	if got := c.store.LineCount(); got != n {
		return fmt.Errorf("expected %d cart lines, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) theCartHoldsItems(n int) error {
	if got := c.store.ItemCount(); got != n {
		return fmt.Errorf("expected %d items, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) theLineForProductSizeHasQuantity(id, size string, quantity int) error {
	line, ok := c.store.Line(id, size)
	if !ok {
		return fmt.Errorf("no cart line for %s/%s", id, size)
	}
	if line.Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, line.Quantity)
	}
	return nil
}

func (c *storefrontTestContext) theCartSubtotalIs(subtotal int) error {
	if got := c.store.Subtotal(); got != int64(subtotal) {
		return fmt.Errorf("expected subtotal %d, got %d", subtotal, got)
	}
	return nil
}

func (c *storefrontTestContext) productIsInTheWishlist(id string) error {
	if !c.store.IsInWishlist(id) {
		return fmt.Errorf("expected %q in the wishlist", id)
	}
	return nil
}

func (c *storefrontTestContext) productIsNotInTheWishlist(id string) error {
	if c.store.IsInWishlist(id) {
		return fmt.Errorf("expected %q not to be in the wishlist", id)
	}
	return nil
}

func (c *storefrontTestContext) theWishlistHasEntry(n int) error {
	if got := len(c.store.Wishlist()); got != n {
		return fmt.Errorf("expected %d wishlist entries, got %d", n, got)
	}
	return nil
}

func (c *storefrontTestContext) catalogProducts() []models.Product {
	out := make([]models.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id])
	}
	return out
}

func (c *storefrontTestContext) iSearchCategoryAndTag(category, tag string) error {
	c.results = catalog.Search(c.catalogProducts(), catalog.Query{
		Criteria: catalog.Criteria{Category: category, Tag: tag},
	}).Items
	return nil
}

func (c *storefrontTestContext) iSearchSortedBy(sort string) error {
	c.results = catalog.Search(c.catalogProducts(), catalog.Query{
		Sort: catalog.ParseSort(sort),
	}).Items
	return nil
}

func (c *storefrontTestContext) theResultsAre(list string) error {
	ids := make([]string, 0, len(c.results))
	for _, p := range c.results {
		ids = append(ids, p.ID)
	}
	if got := strings.Join(ids, ","); got != list {
		return fmt.Errorf("expected results %q, got %q", list, got)
	}
	return nil
}

func (c *storefrontTestContext) theResultPricesAre(list string) error {
	want := strings.Split(list, ",")
	if len(want) != len(c.results) {
		return fmt.Errorf("expected %d results, got %d", len(want), len(c.results))
	}
	for i, raw := range want {
		price, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		if c.results[i].Price != price {
			return errors.New("results are not in the expected price order")
		}
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &storefrontTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty shopper store$`, tc.anEmptyShopperStore)
	ctx.Step(`^a product "([^"]*)" priced (\d+) in category "([^"]*)"$`, tc.aProductPricedInCategory)
	ctx.Step(`^a product "([^"]*)" priced (\d+) in category "([^"]*)" tagged "([^"]*)"$`, tc.aProductPricedInCategoryTagged)

	// When steps
	ctx.Step(`^I add product "([^"]*)" size "([^"]*)" quantity (-?\d+) to the cart$`, tc.iAddProductSizeQuantityToTheCart)
	ctx.Step(`^I set the quantity of product "([^"]*)" size "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfProductSizeTo)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^I add product "([^"]*)" to the wishlist$`, tc.iAddProductToTheWishlist)
	ctx.Step(`^I remove product "([^"]*)" from the wishlist$`, tc.iRemoveProductFromTheWishlist)
	ctx.Step(`^the store is reloaded from storage$`, tc.theStoreIsReloadedFromStorage)
	ctx.Step(`^I search category "([^"]*)" and tag "([^"]*)"$`, tc.iSearchCategoryAndTag)
	ctx.Step(`^I search sorted by "([^"]*)"$`, tc.iSearchSortedBy)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart holds (\d+) items$`, tc.theCartHoldsItems)
	ctx.Step(`^the line for product "([^"]*)" size "([^"]*)" has quantity (\d+)$`, tc.theLineForProductSizeHasQuantity)
	ctx.Step(`^the cart subtotal is (\d+)$`, tc.theCartSubtotalIs)
	ctx.Step(`^product "([^"]*)" is in the wishlist$`, tc.productIsInTheWishlist)
	ctx.Step(`^product "([^"]*)" is not in the wishlist$`, tc.productIsNotInTheWishlist)
	ctx.Step(`^the wishlist has (\d+) entry$`, tc.theWishlistHasEntry)
	ctx.Step(`^the results are "([^"]*)"$`, tc.theResultsAre)
	ctx.Step(`^the result prices are "([^"]*)"$`, tc.theResultPricesAre)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"storefront.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
