package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names expected in the two tabular sources. A missing required
// column is a load-time fatal error, never a per-query one.
var (
	gameRequiredColumns = []string{"name", "genre", "description", "players", "rules"}
	cafeRequiredColumns = []string{"name", "location"}
)

// LoadGamesCSV reads the board game table from r. The header row is
// matched case-insensitively; optional popularity/link columns are picked
// up when present.
func LoadGamesCSV(r io.Reader) ([]Game, error) {
	rows, cols, err := readTable(r, gameRequiredColumns)
	if err != nil {
		return nil, fmt.Errorf("games table: %w", err)
	}

	games := make([]Game, 0, len(rows))
	for _, row := range rows {
		g := Game{
			Name:        row[cols["name"]],
			Genre:       row[cols["genre"]],
			Description: row[cols["description"]],
			Players:     row[cols["players"]],
			Rules:       row[cols["rules"]],
		}
		if i, ok := cols["popularity"]; ok {
			g.Popularity, _ = strconv.Atoi(strings.TrimSpace(row[i]))
		}
		if i, ok := cols["link"]; ok {
			g.Link = row[i]
		}
		games = append(games, g)
	}
	return games, nil
}

// LoadCafesCSV reads the cafe table from r.
func LoadCafesCSV(r io.Reader) ([]Cafe, error) {
	rows, cols, err := readTable(r, cafeRequiredColumns)
	if err != nil {
		return nil, fmt.Errorf("cafes table: %w", err)
	}

	cafes := make([]Cafe, 0, len(rows))
	for _, row := range rows {
		c := Cafe{
			Name:     row[cols["name"]],
			Location: row[cols["location"]],
		}
		if i, ok := cols["popularity"]; ok {
			c.Popularity, _ = strconv.Atoi(strings.TrimSpace(row[i]))
		}
		if i, ok := cols["link"]; ok {
			c.Link = row[i]
		}
		cafes = append(cafes, c)
	}
	return cafes, nil
}

// LoadStore opens both CSV files and builds the process-wide store.
func LoadStore(gamesPath, cafesPath string) (*Store, error) {
	gf, err := os.Open(gamesPath)
	if err != nil {
		return nil, fmt.Errorf("open games csv: %w", err)
	}
	defer gf.Close()

	games, err := LoadGamesCSV(gf)
	if err != nil {
		return nil, err
	}

	cf, err := os.Open(cafesPath)
	if err != nil {
		return nil, fmt.Errorf("open cafes csv: %w", err)
	}
	defer cf.Close()

	cafes, err := LoadCafesCSV(cf)
	if err != nil {
		return nil, err
	}

	return NewStore(games, cafes), nil
}

func readTable(r io.Reader, required []string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", name)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}

	return rows, cols, nil
}
