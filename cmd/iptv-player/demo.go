// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	lorem "github.com/drhodes/golorem"

	"github.com/VodenoFF/IPTV-Player/xtream"
)

// demoProvider fabricates URLs for the generated catalog. The null
// playback engine accepts them without caring what they point at.
type demoProvider struct{}

func (demoProvider) StreamURL(id xtream.FlexInt) string {
	return fmt.Sprintf("demo://channel/%d", int(id))
}

// demoCategories are the shelves the fake panel stocks. The counts
// are large on purpose: the channel list is built to stay smooth at
// thousands of rows, and the demo should prove it.
var demoCategories = []struct {
	name     string
	min, max int
}{
	{"News", 200, 400},
	{"Movies", 800, 1600},
	{"Sports", 300, 600},
	{"Kids", 150, 300},
	{"Music", 200, 400},
	{"Documentary", 400, 900},
}

// demoCatalog fabricates a catalog without needing a panel account.
// Channels carry no logo URLs, so every row keeps its monogram tile
// and nothing touches the network.
func demoCatalog() *xtream.Catalog {
	var (
		cats    []xtream.Category
		streams []xtream.Stream
		id      = 1
	)
	for ci, c := range demoCategories {
		catID := strconv.Itoa(ci + 1)
		cats = append(cats, xtream.Category{
			ID:   xtream.FlexString(catID),
			Name: c.name,
		})
		for n := rand.Intn(c.max-c.min) + c.min; n > 0; n-- {
			name := strings.Trim(lorem.Sentence(1, 3), ".")
			if rand.Float32() > 0.7 {
				name += " HD"
			}
			streams = append(streams, xtream.Stream{
				Num:        xtream.FlexInt(id),
				Name:       name,
				ID:         xtream.FlexInt(id),
				CategoryID: xtream.FlexString(catID),
			})
			id++
		}
	}
	return xtream.BuildCatalog(cats, streams)
}
