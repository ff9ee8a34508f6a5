package store

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"catalog-service/internal/catalog"
)

// Options configures a Store. The default category and comment author are
// deployment policy, not fixed business logic, so they arrive from
// configuration.
type Options struct {
	PageSize             int
	DefaultCategory      catalog.Category
	DefaultCommentAuthor string
}

// Store owns the canonical product list and a derived filtered/sorted view.
// The view holds pointers into canonical storage, so every mutation has a
// single source of truth and both views can never diverge. All state is
// guarded by an RWMutex: the logical model is a single actor, but the HTTP
// layer calls in concurrently and each mutation is a critical section.
type Store struct {
	mu sync.RWMutex

	products []*catalog.Product
	byID     map[int]*catalog.Product
	view     []*catalog.Product

	searchTerm string
	category   string
	sortField  catalog.SortField
	sortAsc    bool

	page     int
	pageSize int

	defaultCategory catalog.Category
	defaultAuthor   string

	loadedAt time.Time
}

// ProductInput carries caller-supplied fields for a new product; everything
// else (id, timestamps, flags) is assigned by the store.
type ProductInput struct {
	Title       string
	Slug        string
	Description string
	Price       float64
	Category    *catalog.Category
	Images      []string
}

// PageInfo is the current slice of the filtered view plus its metadata.
type PageInfo struct {
	Products   []catalog.Product `json:"products"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	TotalItems int               `json:"total_items"`
}

// Criteria is the active filter/sort state.
type Criteria struct {
	Search    string `json:"search"`
	Category  string `json:"category"`
	SortField string `json:"sort_field"`
	Ascending bool   `json:"ascending"`
}

const defaultPageSize = 10

func New(opts Options) *Store {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Store{
		products:        []*catalog.Product{},
		byID:            map[int]*catalog.Product{},
		view:            []*catalog.Product{},
		sortField:       catalog.SortByID,
		sortAsc:         true,
		page:            1,
		pageSize:        pageSize,
		defaultCategory: opts.DefaultCategory,
		defaultAuthor:   opts.DefaultCommentAuthor,
	}
}

// Load replaces the catalog with the normalized feed contents and resets
// all criteria. A parse failure leaves a fully initialized empty store;
// the error is returned for logging only.
func (s *Store) Load(raw []byte) (int, error) {
	products, err := catalog.Normalize(raw)
	if products == nil {
		products = []*catalog.Product{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products
	s.byID = make(map[int]*catalog.Product, len(products))
	for _, p := range products {
		// First occurrence wins when the feed carries duplicate ids.
		if _, ok := s.byID[p.ID]; !ok {
			s.byID[p.ID] = p
		}
	}
	s.searchTerm = ""
	s.category = ""
	s.sortField = catalog.SortByID
	s.sortAsc = true
	s.applyFilters()
	s.loadedAt = time.Now()
	return len(products), err
}

// NextProductID returns one more than the highest existing id. Non-numeric
// feed ids were already normalized to 0, so they never win the max.
func (s *Store) NextProductID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextProductID()
}

func (s *Store) nextProductID() int {
	maxID := 0
	for _, p := range s.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// NextCommentID returns the next "c<n>" id for a product. Ids not matching
// the pattern contribute 0; uniqueness is scoped to the product.
func (s *Store) NextCommentID(productID int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[productID]
	if !ok {
		return "c1"
	}
	return nextCommentID(p)
}

func nextCommentID(p *catalog.Product) string {
	maxID := 0
	for _, c := range p.Comments {
		if n := commentIDSuffix(c.ID); n > maxID {
			maxID = n
		}
	}
	return "c" + strconv.Itoa(maxID+1)
}

func commentIDSuffix(id string) int {
	rest, ok := strings.CutPrefix(id, "c")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// AddProduct appends a new product to the canonical list and recomputes
// the view. Slug defaults from the title, category from the configured
// default, and the comment list starts empty.
func (s *Store) AddProduct(in ProductInput) catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	slug := in.Slug
	if slug == "" {
		slug = catalog.Slugify(in.Title)
	}
	category := s.defaultCategory
	if in.Category != nil {
		category = *in.Category
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	now := timestamp()
	p := &catalog.Product{
		ID:          s.nextProductID(),
		Title:       in.Title,
		Slug:        slug,
		Description: in.Description,
		Price:       in.Price,
		Category:    category,
		Images:      images,
		CreationAt:  now,
		UpdatedAt:   now,
		IsDeleted:   false,
		Comments:    []catalog.Comment{},
	}
	s.products = append(s.products, p)
	s.byID[p.ID] = p
	s.applyFilters()
	return p.Clone()
}

// SoftDelete marks a product deleted without removing it from either view.
// An unknown id is a no-op.
func (s *Store) SoftDelete(id int) bool {
	return s.setDeleted(id, true)
}

// Restore clears the soft-delete flag. An unknown id is a no-op.
func (s *Store) Restore(id int) bool {
	return s.setDeleted(id, false)
}

func (s *Store) setDeleted(id int, deleted bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[id]
	if !ok {
		return false
	}
	p.IsDeleted = deleted
	p.UpdatedAt = timestamp()
	return true
}

// AddComment appends a comment with a per-product unique id. An empty
// author falls back to the configured default.
func (s *Store) AddComment(productID int, content, author string) (catalog.Comment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[productID]
	if !ok {
		return catalog.Comment{}, false
	}
	if author == "" {
		author = s.defaultAuthor
	}
	now := timestamp()
	comment := catalog.Comment{
		ID:        nextCommentID(p),
		Content:   content,
		Author:    author,
		CreatedAt: now,
	}
	p.Comments = append(p.Comments, comment)
	p.UpdatedAt = now
	return comment, true
}

// UpdateComment replaces a comment's content in place.
func (s *Store) UpdateComment(productID int, commentID, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[productID]
	if !ok {
		return false
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments[i].Content = content
			p.UpdatedAt = timestamp()
			return true
		}
	}
	return false
}

// DeleteComment removes a comment, preserving the order of the rest.
// Comments are hard-deleted, unlike products.
func (s *Store) DeleteComment(productID int, commentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[productID]
	if !ok {
		return false
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			p.UpdatedAt = timestamp()
			return true
		}
	}
	return false
}

// SetSearchTerm updates the substring criterion and recomputes the view.
func (s *Store) SetSearchTerm(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchTerm = term
	s.applyFilters()
}

// SetCategory updates the category criterion and recomputes the view.
func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
	s.applyFilters()
}

// SetSort replaces both sort field and direction.
func (s *Store) SetSort(field string, ascending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortField = catalog.ParseSortField(field)
	s.sortAsc = ascending
	s.applyFilters()
}

// ToggleSort flips the direction when the field is unchanged, otherwise
// switches to the new field ascending.
func (s *Store) ToggleSort(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	parsed := catalog.ParseSortField(field)
	if parsed == s.sortField {
		s.sortAsc = !s.sortAsc
	} else {
		s.sortField = parsed
		s.sortAsc = true
	}
	s.applyFilters()
}

// applyFilters recomputes the derived view from the current criteria and
// resets pagination. Callers must hold the write lock.
func (s *Store) applyFilters() {
	filtered := catalog.Filter(s.products, s.searchTerm, s.category)
	s.view = catalog.SortProducts(filtered, s.sortField, s.sortAsc)
	s.page = 1
}

// SetPage clamps the requested page into [1, totalPages].
func (s *Store) SetPage(page int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.totalPages()
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}
	s.page = page
	return s.page
}

// NextPage advances one page, clamped at the last page.
func (s *Store) NextPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page < s.totalPages() {
		s.page++
	}
	return s.page
}

// PrevPage steps back one page, clamped at page 1.
func (s *Store) PrevPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page > 1 {
		s.page--
	}
	return s.page
}

// Page returns deep copies of the current page slice plus metadata; the
// last page may be partial.
func (s *Store) Page() PageInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := s.totalPages()
	start := (s.page - 1) * s.pageSize
	if start > len(s.view) {
		start = len(s.view)
	}
	end := start + s.pageSize
	if end > len(s.view) {
		end = len(s.view)
	}
	products := make([]catalog.Product, 0, end-start)
	for _, p := range s.view[start:end] {
		products = append(products, p.Clone())
	}
	return PageInfo{
		Products:   products,
		Page:       s.page,
		PageSize:   s.pageSize,
		TotalPages: total,
		TotalItems: len(s.view),
	}
}

func (s *Store) totalPages() int {
	pages := (len(s.view) + s.pageSize - 1) / s.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Get returns a deep copy of a product by id.
func (s *Store) Get(id int) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return catalog.Product{}, false
	}
	return p.Clone(), true
}

// Products returns a deep-copied snapshot of the canonical list, soft-
// deleted entries included.
func (s *Store) Products() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	return out
}

// Categories returns the deduplicated categories of the canonical list.
func (s *Store) Categories() []catalog.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.UniqueCategories(s.products)
}

// Stats aggregates the canonical list.
func (s *Store) Stats() catalog.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Statistics(s.products)
}

// Criteria reports the active filter/sort state.
func (s *Store) Criteria() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Criteria{
		Search:    s.searchTerm,
		Category:  s.category,
		SortField: string(s.sortField),
		Ascending: s.sortAsc,
	}
}

// Counts reports canonical and soft-deleted product counts, for gauges.
func (s *Store) Counts() (total, deleted int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.IsDeleted {
			deleted++
		}
	}
	return len(s.products), deleted
}

// LoadedAt reports when the feed was last loaded.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
