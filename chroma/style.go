package chroma

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/diffreview"
)

// StyleFromPalette returns a function that maps chroma token types to
// diffreview styles using the syntax colors of p.
func StyleFromPalette(p diffreview.Palette) StyleFunc {
	return func(tt chromalib.TokenType) diffreview.Style {
		switch {
		case tt == chromalib.KeywordType:
			return diffreview.Style{Foreground: p.Type, Bold: true}
		case tt.InCategory(chromalib.Keyword):
			return diffreview.Style{Foreground: p.Keyword, Bold: true}
		case tt.InCategory(chromalib.Comment):
			return diffreview.Style{Foreground: p.Comment}
		case tt.InSubCategory(chromalib.LiteralString):
			return diffreview.Style{Foreground: p.String}
		case tt.InSubCategory(chromalib.LiteralNumber):
			return diffreview.Style{Foreground: p.Number}
		case tt.InCategory(chromalib.Operator):
			return diffreview.Style{Foreground: p.Operator}
		case tt == chromalib.NameFunction, tt == chromalib.NameFunctionMagic:
			return diffreview.Style{Foreground: p.Function}
		case tt == chromalib.NameBuiltin, tt == chromalib.NameClass:
			return diffreview.Style{Foreground: p.Type}
		case tt == chromalib.NameConstant:
			return diffreview.Style{Foreground: p.Constant}
		case tt.InCategory(chromalib.Punctuation):
			return diffreview.Style{Foreground: p.Punctuation}
		default:
			return diffreview.Style{}
		}
	}
}
