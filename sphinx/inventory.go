// Package sphinx parses Sphinx object inventories (objects.inv) into a
// rulesbot.Inventory.
package sphinx

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fwojciec/rulesbot"
	"github.com/klauspost/compress/zlib"
)

// InventoryFile is the conventional name of the inventory under a
// documentation root.
const InventoryFile = "objects.inv"

const (
	headerV1 = "# Sphinx inventory version 1"
	headerV2 = "# Sphinx inventory version 2"
)

// entryV2 matches "name domain:role priority location dispname".
// Names may contain spaces, so the name is matched lazily.
var entryV2 = regexp.MustCompile(`^(.+?)\s+(\S+:\S+)\s+(-?\d+)\s+?(\S*)\s+(.*)$`)

// ParseResult holds a parsed inventory and how many lines were skipped.
type ParseResult struct {
	Project   string
	Version   string
	Entries   []rulesbot.InventoryEntry
	Skipped   int
	Inventory *rulesbot.Inventory
}

// Parse reads an inventory in format version 1 or 2. Locations are
// resolved against baseURL. Malformed entry lines are skipped; an
// unrecognized header or an inventory without a single valid entry is an
// error.
func Parse(r io.Reader, baseURL string) (*ParseResult, error) {
	br := bufio.NewReader(r)

	header, err := readLine(br)
	if err != nil {
		return nil, rulesbot.Errorf(rulesbot.EINVALID, "failed to read inventory header: %v", err)
	}

	var result *ParseResult
	switch header {
	case headerV1:
		result, err = parseV1(br, baseURL)
	case headerV2:
		result, err = parseV2(br, baseURL)
	default:
		return nil, rulesbot.Errorf(rulesbot.EINVALID, "unknown inventory header %q", header)
	}
	if err != nil {
		return nil, err
	}

	if len(result.Entries) == 0 {
		return nil, rulesbot.Errorf(rulesbot.EINVALID, "inventory has no valid entries (%d skipped)", result.Skipped)
	}
	result.Inventory = rulesbot.NewInventory(result.Entries)
	return result, nil
}

func parseV1(br *bufio.Reader, baseURL string) (*ParseResult, error) {
	result := &ParseResult{}
	if err := readMeta(br, result); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(br)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			result.Skipped++
			continue
		}
		name, typ, location := fields[0], fields[1], fields[2]
		kind := "py:" + typ
		if typ == "mod" {
			kind = "py:module"
			location += "#module-" + name
		} else {
			location += "#" + name
		}
		result.Entries = append(result.Entries, rulesbot.InventoryEntry{
			Kind: kind,
			Name: name,
			Location: rulesbot.Location{
				Project:     result.Project,
				Version:     result.Version,
				URL:         baseURL + location,
				DisplayName: name,
			},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	return result, nil
}

func parseV2(br *bufio.Reader, baseURL string) (*ParseResult, error) {
	result := &ParseResult{}
	if err := readMeta(br, result); err != nil {
		return nil, err
	}

	compression, err := readLine(br)
	if err != nil {
		return nil, rulesbot.Errorf(rulesbot.EINVALID, "failed to read inventory header: %v", err)
	}
	if !strings.Contains(compression, "zlib") {
		return nil, rulesbot.Errorf(rulesbot.EINVALID, "unsupported inventory compression %q", compression)
	}

	zr, err := zlib.NewReader(br)
	if err != nil {
		return nil, rulesbot.Errorf(rulesbot.EINVALID, "failed to decompress inventory: %v", err)
	}
	defer zr.Close()

	scanner := bufio.NewScanner(zr)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := entryV2.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			result.Skipped++
			continue
		}
		name, kind, location, dispname := m[1], m[2], m[4], m[5]
		if strings.HasSuffix(location, "$") {
			location = location[:len(location)-1] + name
		}
		if dispname == "-" {
			dispname = name
		}
		result.Entries = append(result.Entries, rulesbot.InventoryEntry{
			Kind: kind,
			Name: name,
			Location: rulesbot.Location{
				Project:     result.Project,
				Version:     result.Version,
				URL:         baseURL + location,
				DisplayName: dispname,
			},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, rulesbot.Errorf(rulesbot.EINVALID, "failed to decompress inventory: %v", err)
	}
	return result, nil
}

// readMeta reads the "# Project:" and "# Version:" header lines.
func readMeta(br *bufio.Reader, result *ParseResult) error {
	project, err := readLine(br)
	if err != nil {
		return rulesbot.Errorf(rulesbot.EINVALID, "failed to read inventory header: %v", err)
	}
	version, err := readLine(br)
	if err != nil {
		return rulesbot.Errorf(rulesbot.EINVALID, "failed to read inventory header: %v", err)
	}
	result.Project = strings.TrimSpace(strings.TrimPrefix(project, "# Project:"))
	result.Version = strings.TrimSpace(strings.TrimPrefix(version, "# Version:"))
	return nil
}

// readLine reads a single header line without its line ending.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ensure Loader implements rulesbot.InventoryLoader at compile time.
var _ rulesbot.InventoryLoader = (*Loader)(nil)

// Loader downloads and parses the inventory of a documentation site.
type Loader struct {
	fetcher rulesbot.Fetcher
}

// NewLoader creates a Loader that downloads inventories with fetcher.
func NewLoader(fetcher rulesbot.Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load fetches baseURL + "objects.inv" and parses it. baseURL must end with
// a slash; entry locations are resolved relative to it.
func (l *Loader) Load(ctx context.Context, baseURL string) (*rulesbot.Inventory, error) {
	body, err := l.fetcher.Fetch(ctx, baseURL+InventoryFile)
	if err != nil {
		return nil, fmt.Errorf("fetch inventory: %w", err)
	}
	result, err := Parse(strings.NewReader(body), baseURL)
	if err != nil {
		return nil, err
	}
	return result.Inventory, nil
}
