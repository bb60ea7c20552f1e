package cookbook

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/roach88/recipebox/internal/query"
	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/store"
)

// Cookbook is the recipe collection backed by a store.
type Cookbook struct {
	mu      sync.RWMutex
	recipes []recipe.Recipe // newest additions first

	store *store.Store
	ids   recipe.IDGenerator
	clock recipe.Clock
	log   *zap.Logger
}

// Option configures a Cookbook.
type Option func(*Cookbook)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cookbook) {
		if l != nil {
			c.log = l
		}
	}
}

// WithIDGenerator replaces the UUIDv7 generator, typically with a
// deterministic one in tests.
func WithIDGenerator(g recipe.IDGenerator) Option {
	return func(c *Cookbook) { c.ids = g }
}

// WithClock replaces the system clock.
func WithClock(clock recipe.Clock) Option {
	return func(c *Cookbook) { c.clock = clock }
}

// New creates an empty cookbook over s. Call Load to read stored recipes.
func New(s *store.Store, opts ...Option) *Cookbook {
	c := &Cookbook{
		recipes: []recipe.Recipe{},
		store:   s,
		ids:     recipe.UUIDv7Generator{},
		clock:   recipe.SystemClock{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the in-memory collection with the stored recipes. On error
// the collection is left unchanged.
func (c *Cookbook) Load(ctx context.Context) error {
	all, err := c.store.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	c.mu.Lock()
	c.recipes = all
	c.mu.Unlock()

	c.log.Debug("loaded recipes", zap.Int("count", len(all)))
	return nil
}

// Add validates d, creates the recipe and persists it. A *recipe.ValidationError
// leaves the cookbook untouched. A storage error is returned together with
// the created recipe, which stays in memory.
func (c *Cookbook) Add(ctx context.Context, d recipe.Draft) (recipe.Recipe, error) {
	r, err := recipe.New(d, c.ids, c.clock)
	if err != nil {
		return recipe.Recipe{}, err
	}

	c.mu.Lock()
	c.recipes = append([]recipe.Recipe{r}, c.recipes...)
	c.mu.Unlock()

	if err := c.store.Put(ctx, r); err != nil {
		return r.Clone(), c.persistFailed("add", r.ID, err)
	}
	c.log.Info("recipe added", zap.String("id", r.ID), zap.String("name", r.Name))
	return r.Clone(), nil
}

// Update revises the recipe with r.ID using r's editable fields. The ID,
// DateAdded, favorite flag and rating stay as stored.
func (c *Cookbook) Update(ctx context.Context, r recipe.Recipe) (recipe.Recipe, bool, error) {
	d := r.Draft()
	if err := d.Validate(); err != nil {
		return recipe.Recipe{}, false, err
	}

	c.mu.Lock()
	i := c.indexOf(r.ID)
	if i < 0 {
		c.mu.Unlock()
		c.log.Debug("update of unknown recipe ignored", zap.String("id", r.ID))
		return recipe.Recipe{}, false, nil
	}
	updated, err := recipe.Revise(c.recipes[i], d)
	if err != nil {
		c.mu.Unlock()
		return recipe.Recipe{}, true, err
	}
	c.recipes[i] = updated
	c.mu.Unlock()

	if err := c.store.Put(ctx, updated); err != nil {
		return updated.Clone(), true, c.persistFailed("update", r.ID, err)
	}
	return updated.Clone(), true, nil
}

// Delete removes the recipe with id.
func (c *Cookbook) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		c.log.Debug("delete of unknown recipe ignored", zap.String("id", id))
		return false, nil
	}
	c.recipes = append(c.recipes[:i:i], c.recipes[i+1:]...)
	c.mu.Unlock()

	if err := c.store.Delete(ctx, id); err != nil {
		return true, c.persistFailed("delete", id, err)
	}
	return true, nil
}

// ToggleFavorite flips the favorite flag and returns the updated recipe.
func (c *Cookbook) ToggleFavorite(ctx context.Context, id string) (recipe.Recipe, bool, error) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return recipe.Recipe{}, false, nil
	}
	c.recipes[i].IsFavorite = !c.recipes[i].IsFavorite
	r := c.recipes[i].Clone()
	c.mu.Unlock()

	found, err := c.store.UpdateFavorite(ctx, id, r.IsFavorite)
	if err == nil && !found {
		err = c.resync(ctx, r)
	}
	if err != nil {
		return r, true, c.persistFailed("toggle favorite", id, err)
	}
	return r, true, nil
}

// Rate folds stars (0 to 5) into the recipe's average rating.
func (c *Cookbook) Rate(ctx context.Context, id string, stars float64) (recipe.Recipe, bool, error) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return recipe.Recipe{}, false, nil
	}
	rated, err := recipe.Rate(c.recipes[i], stars)
	if err != nil {
		c.mu.Unlock()
		return recipe.Recipe{}, true, err
	}
	c.recipes[i] = rated
	r := rated.Clone()
	c.mu.Unlock()

	found, err := c.store.UpdateRating(ctx, id, r.RatingValue(), r.TotalRatings)
	if err == nil && !found {
		err = c.resync(ctx, r)
	}
	if err != nil {
		return r, true, c.persistFailed("rate", id, err)
	}
	return r, true, nil
}

// resync writes the whole record when a partial update found no row, which
// happens after an earlier Put failed.
func (c *Cookbook) resync(ctx context.Context, r recipe.Recipe) error {
	c.log.Debug("stored row missing, rewriting recipe", zap.String("id", r.ID))
	return c.store.Put(ctx, r)
}

func (c *Cookbook) persistFailed(op, id string, err error) error {
	c.log.Warn("change may not persist",
		zap.String("op", op),
		zap.String("id", id),
		zap.Bool("quota", store.IsQuotaError(err)),
		zap.Error(err),
	)
	return fmt.Errorf("%s %s: %w", op, id, err)
}

// View returns the recipes selected and ordered by spec.
func (c *Cookbook) View(spec query.Spec) []recipe.Recipe {
	c.mu.RLock()
	out := query.Run(c.recipes, spec)
	c.mu.RUnlock()

	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// Get returns the recipe with id from memory.
func (c *Cookbook) Get(id string) (recipe.Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return recipe.Recipe{}, false
	}
	return c.recipes[i].Clone(), true
}

// Len returns the number of recipes in memory.
func (c *Cookbook) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recipes)
}

// Tags returns every tag in use, in first-seen order.
func (c *Cookbook) Tags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query.AllTags(c.recipes)
}

// TagCounts returns how many recipes carry each tag.
func (c *Cookbook) TagCounts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query.TagCounts(c.recipes)
}

// Lookup queries the store's secondary indexes directly.
func (c *Cookbook) Lookup(ctx context.Context, l store.Lookup) ([]recipe.Recipe, error) {
	recipes, err := c.store.Find(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("lookup: %w", err)
	}
	return recipes, nil
}

// Export returns the shareable JSON document for one recipe and the file
// name it should be saved under.
func (c *Cookbook) Export(id string) (data []byte, filename string, found bool, err error) {
	r, ok := c.Get(id)
	if !ok {
		return nil, "", false, nil
	}
	data, err = recipe.MarshalExport(r)
	if err != nil {
		return nil, "", true, fmt.Errorf("export %s: %w", id, err)
	}
	return data, recipe.ExportFilename(r.Name), true, nil
}

// indexOf must be called with c.mu held.
func (c *Cookbook) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.recipes {
		if c.recipes[i].ID == id {
			return i
		}
	}
	return -1
}
