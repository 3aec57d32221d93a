// Package report exports run reports for CI systems.
//
// JUnit maps every directory task to a test suite and every processed file
// to a test case: compiled and removed files pass, skipped files are
// skipped, missing binaries and failures fail.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/beevik/etree"
)

// JUnit renders rep as a JUnit XML document
func JUnit(rep *types.Report) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	suites := doc.CreateElement("testsuites")
	suites.CreateAttr("name", "cyrelease "+rep.Operation)
	suites.CreateAttr("id", rep.RunID)

	var tests, failures, errs, skipped int
	for _, t := range rep.Tasks {
		if t == nil {
			continue
		}
		s := writeSuite(suites, t)
		tests += s.tests
		failures += s.failures
		errs += s.errors
		skipped += s.skipped
	}

	suites.CreateAttr("tests", strconv.Itoa(tests))
	suites.CreateAttr("failures", strconv.Itoa(failures))
	suites.CreateAttr("errors", strconv.Itoa(errs))
	suites.CreateAttr("skipped", strconv.Itoa(skipped))
	if !rep.FinishedAt.IsZero() {
		suites.CreateAttr("time", seconds(rep.FinishedAt.Sub(rep.StartedAt).Seconds()))
	}

	doc.Indent(2)
	return doc
}

type counts struct {
	tests, failures, errors, skipped int
}

func writeSuite(parent *etree.Element, t *types.TaskResult) counts {
	suite := parent.CreateElement("testsuite")
	suite.CreateAttr("name", t.Dir)

	var c counts
	addCase := func(name string) *etree.Element {
		tc := suite.CreateElement("testcase")
		tc.CreateAttr("classname", t.Dir)
		tc.CreateAttr("name", name)
		c.tests++
		return tc
	}

	for _, f := range t.Compiled {
		addCase(relative(t.Dir, f))
	}
	for _, f := range t.Skipped {
		addCase(relative(t.Dir, f)).CreateElement("skipped")
		c.skipped++
	}
	for _, f := range t.Missing {
		failure := addCase(relative(t.Dir, f)).CreateElement("failure")
		failure.CreateAttr("type", string(errors.ErrArtifactMissing))
		failure.CreateAttr("message", "no binary produced")
		c.failures++
	}
	for _, f := range t.Failed {
		failure := addCase(relative(t.Dir, f)).CreateElement("failure")
		failure.CreateAttr("type", string(errors.ErrCompile))
		failure.CreateAttr("message", "failed to compile")
		c.failures++
	}
	if t.Error != "" {
		e := addCase("(worker)").CreateElement("error")
		e.CreateAttr("type", string(errors.GetErrorCode(t.Err)))
		e.CreateAttr("message", t.Error)
		c.errors++
	}

	suite.CreateAttr("tests", strconv.Itoa(c.tests))
	suite.CreateAttr("failures", strconv.Itoa(c.failures))
	suite.CreateAttr("errors", strconv.Itoa(c.errors))
	suite.CreateAttr("skipped", strconv.Itoa(c.skipped))
	suite.CreateAttr("time", seconds(t.Duration.Seconds()))
	return c
}

// WriteJUnit writes the JUnit document of rep to w
func WriteJUnit(w io.Writer, rep *types.Report) error {
	if _, err := JUnit(rep).WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write junit report")
	}
	return nil
}

// SaveJUnit writes the JUnit document of rep to path
func SaveJUnit(fsys types.FS, path string, rep *types.Report) error {
	data, err := JUnit(rep).WriteToBytes()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to render junit report")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
		}
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	return nil
}

func relative(dir, file string) string {
	if rel, err := filepath.Rel(dir, file); err == nil {
		return rel
	}
	return file
}

func seconds(s float64) string {
	return fmt.Sprintf("%.3f", s)
}
