// Package pagination turns page/size/sort query parameters into a store
// request and renders the X-Total-Count and Link headers for a result page.
package pagination

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	HeaderTotalCount = "X-Total-Count"
	HeaderLink       = "Link"
)

// ErrInvalidSort is returned for a sort property the entity does not expose.
var ErrInvalidSort = errors.New("invalid sort property")

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Order struct {
	Property  string
	Direction Direction
}

func (o Order) Descending() bool { return o.Direction == Desc }

// Request is a zero-based page of Size records ordered by Sort.
// An empty Sort means ascending by id.
type Request struct {
	Page int
	Size int
	Sort []Order
}

// Offset saturates at math.MaxInt instead of overflowing.
func (r Request) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

type Defaults struct {
	Size    int
	MaxSize int
}

var DefaultDefaults = Defaults{Size: 20, MaxSize: 2000}

// ParseRequest reads page, size and any number of sort=prop[,prop...][,asc|desc]
// parameters. Malformed or negative numbers fall back to defaults; size is
// clamped to MaxSize and page so that page*MaxSize fits in an int.
func ParseRequest(q url.Values, allowed []string, d Defaults) (Request, error) {
	if d.Size <= 0 {
		d.Size = DefaultDefaults.Size
	}
	if d.MaxSize <= 0 {
		d.MaxSize = DefaultDefaults.MaxSize
	}

	r := Request{Page: 0, Size: d.Size}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			r.Page = min(n, math.MaxInt/d.MaxSize-1)
		}
	}
	if v := q.Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			r.Size = min(n, d.MaxSize)
		}
	}

	for _, raw := range q["sort"] {
		var props []string
		dir := Asc
		for _, tok := range strings.Split(raw, ",") {
			tok = strings.TrimSpace(tok)
			switch strings.ToLower(tok) {
			case "":
				continue
			case string(Asc):
				dir = Asc
				continue
			case string(Desc):
				dir = Desc
				continue
			}
			props = append(props, tok)
		}
		for _, p := range props {
			if !slices.Contains(allowed, p) {
				return Request{}, fmt.Errorf("%w: %q", ErrInvalidSort, p)
			}
			r.Sort = append(r.Sort, Order{Property: p, Direction: dir})
		}
	}
	return r, nil
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content []T
	Number  int
	Size    int
	Total   int64
}

func NewPage[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Number: req.Page, Size: req.Size, Total: total}
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page[T]) HasNext() bool     { return p.Number+1 < p.TotalPages() }
func (p Page[T]) HasPrevious() bool { return p.Number > 0 }

// Headers renders X-Total-Count and a Link header with next, prev, last and
// first relations (in that order) built from the current request URL.
func Headers[T any](u *url.URL, p Page[T]) http.Header {
	h := http.Header{}
	h.Set(HeaderTotalCount, strconv.FormatInt(p.Total, 10))

	var links []string
	if p.HasNext() {
		links = append(links, prepareLink(u, p.Number+1, p.Size, "next"))
	}
	if p.HasPrevious() {
		links = append(links, prepareLink(u, p.Number-1, p.Size, "prev"))
	}
	last := 0
	if tp := p.TotalPages(); tp > 0 {
		last = tp - 1
	}
	links = append(links,
		prepareLink(u, last, p.Size, "last"),
		prepareLink(u, 0, p.Size, "first"),
	)
	h.Set(HeaderLink, strings.Join(links, ","))
	return h
}

func prepareLink(u *url.URL, page, size int, rel string) string {
	cp := *u
	q := cp.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	cp.RawQuery = q.Encode()
	s := strings.NewReplacer(",", "%2C", ";", "%3B").Replace(cp.String())
	return fmt.Sprintf("<%s>; rel=%q", s, rel)
}
