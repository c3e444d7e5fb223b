package world

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadMap reads the three ASCII plane files and assembles a Map plus the
// player spawn. spritesPath may be empty, in which case the sprite plane
// stays zeroed.
//
// Tile plane characters: '.' or ' ' floor, '#' or 'X' wall code 1,
// digit d wall code d+1 (texture index d). Info plane: '.' or ' ' empty, 'N'/'E'/'S'/'W'
// player spawn facing that way, 'F' end-of-level trigger. Sprite plane:
// '.', ' ' or '0' empty, digit d sprite with texture d-1.
func LoadMap(tilesPath, infoPath, spritesPath string) (*Map, Spawn, error) {
	m := &Map{}

	tileRows, err := readPlane(tilesPath)
	if err != nil {
		return nil, Spawn{}, fmt.Errorf("tile plane: %w", err)
	}
	if len(tileRows) == 0 {
		return nil, Spawn{}, fmt.Errorf("tile plane %s contains no rows", tilesPath)
	}

	m.Height = len(tileRows)
	for y, row := range tileRows {
		if len(row) > m.Width {
			m.Width = len(row)
		}
		for x, c := range []byte(row) {
			switch {
			case c == '#' || c == 'X':
				m.Tiles[y][x] = 1
			case c >= '1' && c <= '9':
				m.Tiles[y][x] = uint16(c-'0') + 1
			default:
				m.Tiles[y][x] = TileFloor
			}
		}
	}

	infoRows, err := readPlane(infoPath)
	if err != nil {
		return nil, Spawn{}, fmt.Errorf("info plane: %w", err)
	}
	spawnCount := 0
	var spawn Spawn
	for y, row := range infoRows {
		if y >= m.Height {
			break
		}
		for x, c := range []byte(row) {
			if x >= m.Width {
				break
			}
			var code uint16
			switch c {
			case 'N':
				code = InfoSpawnN
			case 'E':
				code = InfoSpawnE
			case 'S':
				code = InfoSpawnS
			case 'W':
				code = InfoSpawnW
			case 'F':
				code = InfoTriggerEnd
			default:
				code = InfoNone
			}
			m.Info[y][x] = code
			if code >= InfoSpawnN && code <= InfoSpawnW {
				spawnCount++
				spawn.X = float64(x) + 0.5
				spawn.Y = float64(y) + 0.5
				spawn.DirX, spawn.DirY = facing(code)
			}
		}
	}
	if spawnCount != 1 {
		return nil, Spawn{}, fmt.Errorf("info plane %s: expected exactly one spawn marker, found %d", infoPath, spawnCount)
	}

	if spritesPath != "" {
		spriteRows, err := readPlane(spritesPath)
		if err != nil {
			return nil, Spawn{}, fmt.Errorf("sprite plane: %w", err)
		}
		for y, row := range spriteRows {
			if y >= m.Height {
				break
			}
			for x, c := range []byte(row) {
				if x >= m.Width {
					break
				}
				if c >= '1' && c <= '9' {
					m.Sprites[y][x] = uint16(c - '0')
				}
			}
		}
	}

	return m, spawn, nil
}

// readPlane reads one ASCII plane file into trimmed rows, enforcing the
// maximum grid dimensions.
func readPlane(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var rows []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) > MaxWidth {
			return nil, fmt.Errorf("%s row %d is %d cells wide, max %d", path, len(rows)+1, len(line), MaxWidth)
		}
		rows = append(rows, line)
		if len(rows) > MaxHeight {
			return nil, fmt.Errorf("%s has more than %d rows", path, MaxHeight)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return rows, nil
}
