// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/banquet"
	"github.com/poiesic/banquet/core"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	m, err := banquet.NewMarketplace("./catalog_db")
	if err != nil {
		panic(err)
	}
	defer m.Close()
	searcher, err := m.NewSearcher()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	var results []*core.ScoredCandidate
	if len(os.Args) > 1 {
		results, err = searcher.Search(ctx, strings.Join(os.Args[1:], " "), nil)
	} else {
		results, err = searcher.Search(ctx, "outdoor wedding venue for 150 guests", nil)
	}
	if err != nil {
		panic(err)
	}

	fmt.Printf("Found %d packages\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' (#%d)[%0.3f] %s\n", i, hit.Package.Name, hit.Package.Id,
			hit.FinalScore, strings.Join(hit.Explanations, "; "))
	}
}
