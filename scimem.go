// This file is part of scimem.
//
// scimem is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// scimem is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with scimem.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/scummvm/scummvm-sub239/environment"
	"github.com/scummvm/scummvm-sub239/logger"
	"github.com/scummvm/scummvm-sub239/modalflag"
	"github.com/scummvm/scummvm-sub239/patch"
	"github.com/scummvm/scummvm-sub239/resourceloader"
	"github.com/scummvm/scummvm-sub239/vm/reg"
	"github.com/scummvm/scummvm-sub239/version"
	"github.com/scummvm/scummvm-sub239/vm/segment"
)

func main() {
	os.Exit(launch(os.Stdout, os.Args[1:]))
}

// launch returns the exit status of the program
func launch(output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("SEGTABLE", "SEGINFO", "CLASSTABLE", "OFFSETS", "MEMVIZ", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "SEGTABLE":
		err = segtable(md)

	case "SEGINFO":
		err = seginfo(md)

	case "CLASSTABLE":
		err = classtable(md)

	case "OFFSETS":
		err = offsets(md)

	case "MEMVIZ":
		err = memoryGraph(md)

	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// session flags common to every mode
type session struct {
	scripts *modalflag.Numbers
	log     *bool
}

func addSessionFlags(md *modalflag.Modes) session {
	return session{
		scripts: md.AddNumbers("scripts", "comma separated list of scripts to instantiate"),
		log:     md.AddBool("log", false, "echo log to stdout"),
	}
}

// start creates the segment manager for the game file named by the single
// argument and instantiates the requested scripts
func (ses session) start(md *modalflag.Modes) (*segment.Manager, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("game file required for %s mode", md)
	case 1:
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	if *ses.log {
		logger.SetEcho(md.Output)
	}

	env, err := environment.Load(md.GetArg(0))
	if err != nil {
		return nil, err
	}

	var patches patch.Provider
	if env.PatchFile != "" {
		tab, err := patch.LoadTable(env.PatchFile)
		if err != nil {
			return nil, err
		}
		patches = tab
	}

	m, err := segment.NewManager(env, resourceloader.NewDirectory(env.ResourceDir), patches)
	if err != nil {
		return nil, err
	}

	for _, n := range ses.scripts.Values() {
		if _, err := m.Instantiate(n); err != nil {
			return m, err
		}
	}

	return m, nil
}

func segtable(md *modalflag.Modes) error {
	md.NewMode()
	ses := addSessionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := ses.start(md)
	if err != nil {
		return err
	}

	m.WriteSegmentTable(md.Output)

	return nil
}

func seginfo(md *modalflag.Modes) error {
	md.NewMode()
	ses := addSessionFlags(md)
	id := md.AddInt("segment", -1, "show a specific segment. all segments by default")
	reachable := md.AddBool("reachable", false, "write the CBOR encoding of the references held by the segment")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := ses.start(md)
	if err != nil {
		return err
	}

	if *id > 0xffff {
		return fmt.Errorf("segment %d out of range", *id)
	}

	if *reachable {
		if *id < 0 {
			return fmt.Errorf("the reachable flag requires a segment")
		}
		return m.EncodeReachable(md.Output, reg.SegmentID(*id))
	}

	if *id >= 0 {
		return m.WriteSegmentInfo(md.Output, reg.SegmentID(*id))
	}

	for i := 1; i < m.Len(); i++ {
		if m.IsValid(reg.SegmentID(i)) {
			if err := m.WriteSegmentInfo(md.Output, reg.SegmentID(i)); err != nil {
				return err
			}
			io.WriteString(md.Output, "\n")
		}
	}

	return nil
}

func classtable(md *modalflag.Modes) error {
	md.NewMode()
	ses := addSessionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := ses.start(md)
	if err != nil {
		return err
	}

	m.WriteClassTable(md.Output)

	return nil
}

func offsets(md *modalflag.Modes) error {
	md.NewMode()
	ses := addSessionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if ses.scripts.Len() == 0 {
		return fmt.Errorf("at least one script required for %s mode", md)
	}

	m, err := ses.start(md)
	if err != nil {
		return err
	}

	for _, n := range ses.scripts.Values() {
		id, ok := m.ScriptSegment(n)
		if !ok {
			continue
		}
		s, err := m.Script(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "%s\n", s)
		for _, e := range s.OffsetLookup() {
			fmt.Fprintf(md.Output, "  %s\n", e)
		}
	}

	return nil
}

func memoryGraph(md *modalflag.Modes) error {
	md.NewMode()
	ses := addSessionFlags(md)
	id := md.AddInt("segment", 0, "graph a single script segment. the whole segment table by default")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := ses.start(md)
	if err != nil {
		return err
	}

	if *id <= 0 {
		memviz.Map(md.Output, m)
		return nil
	}

	s, err := m.Script(reg.SegmentID(*id))
	if err != nil {
		return err
	}
	memviz.Map(md.Output, s)

	return nil
}
