package graph

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/goombaio/namegenerator"
)

var generator = namegenerator.NewNameGenerator(time.Now().UnixNano())

var operators = []string{"+", "-", "*", "/"}

// RandomDocument creates a demo document with the given number of
// variables and expressions. Formulas combine randomly chosen variables
// and literals with the basic arithmetic operators, so every generated
// document is buildable.
func RandomDocument(name string, variables, expressions int) *Document {
	doc := NewDocument(name)

	var names []string
	for i := 0; i < variables; i++ {
		// generated names are adjective-noun pairs, the separator is no
		// valid name character for formulas
		n := strings.ReplaceAll(generator.Generate(), "-", "")
		if doc.Variables[n] != nil {
			continue
		}
		doc.AddVariable(n, float64(rand.Intn(100)))
		names = append(names, n)
	}

	for i := 0; i < expressions; i++ {
		doc.AddExpression(fmt.Sprintf("%s-%d", generator.Generate(), i), randomFormula(names, 2+rand.Intn(3)))
	}
	return doc
}

func randomFormula(names []string, terms int) string {
	formula := randomTerm(names)
	for i := 1; i < terms; i++ {
		formula = fmt.Sprintf("%s %s %s", formula, operators[rand.Intn(len(operators))], randomTerm(names))
	}
	return formula
}

func randomTerm(names []string) string {
	if len(names) == 0 || rand.Intn(4) == 0 {
		return fmt.Sprintf("%d", rand.Intn(100))
	}
	return names[rand.Intn(len(names))]
}
