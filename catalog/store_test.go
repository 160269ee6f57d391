package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGames() []Game {
	return []Game{
		{Name: "마피아", Genre: "마피아, 파티", Description: "심리전 게임", Players: "6-12명", Rules: "밤이 되면 마피아가 시민을 제거한다."},
		{Name: "스플렌더", Genre: "전략, 카드", Description: "보석 상인 게임", Players: "2-4명", Rules: "보석 칩으로 개발 카드를 구입한다."},
		{Name: "펭귄파티", Genre: "파티", Description: "카드 피라미드 게임", Players: "2-6명", Rules: "같은 색 위에만 카드를 올릴 수 있다."},
	}
}

func testCafes() []Cafe {
	return []Cafe{
		{Name: "레드버튼 홍대점", Location: "홍대", Popularity: 120, Link: "https://example.com/red"},
		{Name: "보드게임피아", Location: "신촌", Popularity: 80},
	}
}

func TestGameByName(t *testing.T) {
	s := NewStore(testGames(), testCafes())

	g, ok := s.GameByName("마피아")
	require.True(t, ok)
	assert.Equal(t, "마피아", g.Name)

	// normalized equality: spacing and case do not matter
	g, ok = s.GameByName("마 피아")
	require.True(t, ok)
	assert.Equal(t, "마피아", g.Name)

	_, ok = s.GameByName("없는게임")
	assert.False(t, ok)
}

func TestGameByNameFirstMatchWins(t *testing.T) {
	games := append(testGames(), Game{Name: "마피아", Genre: "추리", Description: "중복 행"})
	s := NewStore(games, nil)

	g, ok := s.GameByName("마피아")
	require.True(t, ok)
	assert.Equal(t, "마피아, 파티", g.Genre)
}

func TestGamesByGenre(t *testing.T) {
	s := NewStore(testGames(), testCafes())

	got := s.GamesByGenre("전략")
	require.Len(t, got, 1)
	assert.Equal(t, "스플렌더", got[0].Name)

	// substring match over comma-separated tags
	got = s.GamesByGenre("파티")
	require.Len(t, got, 2)

	// unknown genre: empty result, not an error
	assert.Empty(t, s.GamesByGenre("순발력"))
}

func TestCafesByLocation(t *testing.T) {
	s := NewStore(testGames(), testCafes())

	got := s.CafesByLocation("홍 대")
	require.Len(t, got, 1)
	assert.Equal(t, "레드버튼 홍대점", got[0].Name)

	assert.Empty(t, s.CafesByLocation("강남역"))
}

func TestVocabularies(t *testing.T) {
	s := NewStore(testGames(), testCafes())

	assert.Equal(t, []string{"마피아", "파티", "전략", "카드"}, s.Genres())
	assert.Equal(t, []string{"홍대", "신촌"}, s.Locations())
	assert.Equal(t, []string{"마피아", "스플렌더", "펭귄파티"}, s.GameNames())
}

func TestChunks(t *testing.T) {
	s := NewStore(testGames(), testCafes())

	chunks := s.Chunks()
	require.Len(t, chunks, 5)
	assert.Contains(t, chunks[0], "이름: 마피아")
	assert.Contains(t, chunks[0], "규칙: 밤이 되면")
	assert.Contains(t, chunks[3], "지역: 홍대")

	// empty fields are skipped, not rendered as blank lines
	assert.NotContains(t, chunks[4], "링크")
}

func TestLoadGamesCSV(t *testing.T) {
	src := strings.Join([]string{
		"name,genre,description,players,rules,popularity,link",
		"마피아,\"마피아, 파티\",심리전 게임,6-12명,밤이 되면 마피아가 시민을 제거한다.,300,https://example.com/mafia",
		"펭귄파티,파티,카드 피라미드 게임,2-6명,같은 색 위에만 올린다.,,",
	}, "\n")

	games, err := LoadGamesCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "마피아", games[0].Name)
	assert.Equal(t, 300, games[0].Popularity)
	assert.Equal(t, "https://example.com/mafia", games[0].Link)
	assert.Zero(t, games[1].Popularity)
}

func TestLoadGamesCSVMissingColumn(t *testing.T) {
	src := "name,genre,description\n마피아,파티,설명"

	_, err := LoadGamesCSV(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "players")
}

func TestLoadCafesCSV(t *testing.T) {
	src := "Name,Location,Popularity,Link\n레드버튼 홍대점,홍대,120,https://example.com/red"

	cafes, err := LoadCafesCSV(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cafes, 1)
	assert.Equal(t, 120, cafes[0].Popularity)
}
