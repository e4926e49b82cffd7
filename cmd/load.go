package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/MobRulesGames/isomap/config"
	"github.com/MobRulesGames/isomap/logging"
	"github.com/MobRulesGames/isomap/saveindex"
	"github.com/MobRulesGames/isomap/snapshot"
	"github.com/MobRulesGames/isomap/tilemap"
	"github.com/MobRulesGames/memory"
)

// readMapFile reads a whole map file into a pooled block; call free once the
// data has been loaded.
func readMapFile(path string) (data []byte, free func(), err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := int(st.Size())
	if size == 0 {
		// The pool cannot hand back an empty block.
		return []byte{}, func() {}, nil
	}
	block := memory.GetBlock(size)
	if _, err := io.ReadFull(f, block[:size]); err != nil {
		memory.FreeBlock(block)
		return nil, nil, fmt.Errorf("couldn't read %q: %w", path, err)
	}
	return block[:size], func() { memory.FreeBlock(block) }, nil
}

// loadMap loads the configured map file into a new map and derives its
// pathfinding and shadow bits.
func loadMap(cfg config.Config) (*tilemap.Map, error) {
	if cfg.Map.Path == "" {
		return nil, errors.New("no map file; set map.path or pass -map")
	}
	data, free, err := readMapFile(cfg.Map.Path)
	if err != nil {
		return nil, err
	}
	defer free()

	onObject := func(x, y int, objectType tilemap.ObjectType, rawFlags uint8) {
		logging.Trace("object", "x", x, "y", y, "type", objectType.String(), "flags", rawFlags)
	}

	m := tilemap.New()
	if cfg.Map.Width == tilemap.THFileWidth && cfg.Map.Height == tilemap.THFileHeight {
		err = m.LoadTHMap(data, onObject)
	} else if err = m.SetSize(cfg.Map.Width, cfg.Map.Height); err == nil {
		err = m.LoadFromTHFile(data, onObject)
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't load %q: %w", cfg.Map.Path, err)
	}

	derive(cfg, m)
	logSummary(cfg.Map.Path, m.Summarize())
	return m, nil
}

func restoreSnapshot(cfg config.Config, path string) (*tilemap.Map, error) {
	m := tilemap.New()
	if err := snapshot.Load(path, m); err != nil {
		return nil, err
	}
	// Saved flags are already derived; only the wall look is a local choice.
	if cfg.Walls.Transparent {
		m.SetAllWallDrawFlags(tilemap.DrawAlpha50)
	}
	logSummary(path, m.Summarize())
	return m, nil
}

func derive(cfg config.Config, m *tilemap.Map) {
	start := time.Now()
	m.UpdatePathfinding()
	m.UpdateShadows()
	if cfg.Walls.Transparent {
		m.SetAllWallDrawFlags(tilemap.DrawAlpha50)
	}
	logging.Debug("derived flags", "duration", time.Since(start))
}

func logSummary(source string, s tilemap.Summary) {
	logging.Info("map ready",
		"source", source,
		"width", s.Width,
		"height", s.Height,
		"passable", s.Passable,
		"blueprinted", s.Blueprinted,
		"hospital", s.Hospital,
		"objects", s.ObjectCount(),
		"parcels", s.Parcels,
		"rooms", s.Rooms)

	types := make([]tilemap.ObjectType, 0, len(s.Objects))
	for t := range s.Objects {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		logging.Debug("objects", "type", t.String(), "count", s.Objects[t])
	}
}

func saveSnapshot(cfg config.Config, path string, m *tilemap.Map) error {
	level, err := snapshot.ParseLevel(cfg.Snapshot.Level)
	if err != nil {
		return err
	}
	info, err := snapshot.Save(path, m, level)
	if err != nil {
		return fmt.Errorf("couldn't save snapshot: %w", err)
	}
	logging.Info("saved snapshot", "path", info.Path, "bytes", info.Bytes, "digest", info.Digest)

	if cfg.Snapshot.Index == "" {
		return nil
	}
	idx, err := saveindex.Open(cfg.Snapshot.Index)
	if err != nil {
		return fmt.Errorf("couldn't open snapshot index: %w", err)
	}
	defer idx.Close()

	s := m.Summarize()
	_, err = idx.Record(context.Background(), saveindex.Entry{
		Path:     info.Path,
		Width:    s.Width,
		Height:   s.Height,
		Passable: s.Passable,
		Objects:  s.ObjectCount(),
		Digest:   info.Digest,
	})
	return err
}

func listSnapshots(cfg config.Config, out io.Writer) error {
	if cfg.Snapshot.Index == "" {
		return errors.New("no snapshot index configured")
	}
	idx, err := saveindex.Open(cfg.Snapshot.Index)
	if err != nil {
		return fmt.Errorf("couldn't open snapshot index: %w", err)
	}
	defer idx.Close()

	entries, err := idx.List(context.Background())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSAVED\tSIZE\tPASSABLE\tOBJECTS\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%d\t%d\t%s\n",
			e.ID, e.SavedAt.Local().Format(time.DateTime), e.Width, e.Height, e.Passable, e.Objects, e.Path)
	}
	return tw.Flush()
}
