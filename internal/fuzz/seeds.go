package fuzztests

import "testing"

const (
	maxSeedBytes = 64 << 10
	maxFuzzInput = 1 << 16
)

var pythonSeeds = []string{
	"",
	"x = 1\n",
	"# one\n# two\n",
	"#!/usr/bin/env python\n# -*- coding: utf-8 -*-\n# body text\n",
	"def f():\n    # first line of a comment\n    # second line of it\n    return 1  # trailing words here\n",
	"x = 1  # one two three four five six seven eight nine ten eleven twelve thirteen\n#      # fourteen\n",
	"s = '# not a comment'\nt = \"\"\"\n# still a string\n\"\"\"\n",
	"a = [\n    1,  # first\n    2,  # second\n]\n",
	"# type: ignore\n# noqa: E501\n# fmt: off\n",
	"x = 1\r\n# crlf comment\r\n# continues\r\n",
	"\tif x:\n\t\t# tabbed comment\n\t\tpass\n",
	"# ünïcödé wörds and 全角 characters\n# more\n",
	"x = f'{a!r} # inside'  # outside\n",
	"value = 1 + \\\n    2  # continued\n",
	"# no newline at end",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range pythonSeeds {
		f.Add(clampSeed([]byte(seed)))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
