package openapi

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

func badge(background string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(background)).
		Padding(0, 1)
}

var (
	titleStyle = badge("#5B47E0").Padding(0, 2)

	methodStyles = map[string]lipgloss.Style{
		"GET":    badge("#61AFEF"),
		"POST":   badge("#98C379"),
		"PUT":    badge("#E5C07B"),
		"PATCH":  badge("#C678DD"),
		"DELETE": badge("#E06C75"),
	}

	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")).Bold(true)
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ABB2BF"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#61AFEF")).MarginTop(1)
	paramStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
	requiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")).Bold(true)
	codeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ABB2BF"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B47E0")).
			Padding(1)
)

// Displayer renders parsed operations for a terminal
type Displayer struct {
	parser *Parser
}

func NewDisplayer(parser *Parser) *Displayer {
	return &Displayer{parser: parser}
}

func methodStyle(method string) lipgloss.Style {
	if style, ok := methodStyles[method]; ok {
		return style
	}
	return methodStyles["GET"]
}

func statusStyle(code string) lipgloss.Style {
	colors := map[byte]string{'2': "#98C379", '3': "#61AFEF", '4': "#E5C07B", '5': "#E06C75"}
	if len(code) > 0 {
		if color, ok := colors[code[0]]; ok {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
		}
	}
	return codeStyle
}

// RenderIndex lists operations grouped by path under the document title
func (d *Displayer) RenderIndex(paths []PathInfo) string {
	if len(paths) == 0 {
		return summaryStyle.Render("No operations found")
	}

	var output strings.Builder

	if info, _ := d.parser.GetInfo(); info != nil {
		output.WriteString(titleStyle.Render(strings.TrimSpace(info.Title + " v" + info.Version)))
		output.WriteString("\n\n")
		if info.Description != "" {
			output.WriteString(summaryStyle.Render(firstSentence(info.Description)))
			output.WriteString("\n\n")
		}
	}

	if servers, _ := d.parser.GetServers(); len(servers) > 0 {
		output.WriteString(sectionStyle.Render("Servers"))
		output.WriteString("\n")
		for _, server := range servers {
			fmt.Fprintf(&output, "  %s  %s\n", paramStyle.Render(server.URL), summaryStyle.Render(server.Description))
		}
		output.WriteString("\n")
	}

	output.WriteString(sectionStyle.Render("Operations"))
	output.WriteString("\n\n")

	current := ""
	for _, path := range paths {
		if path.Path != current {
			if current != "" {
				output.WriteString("\n")
			}
			output.WriteString(pathStyle.Render(path.Path))
			output.WriteString("\n")
			current = path.Path
		}
		output.WriteString("  ")
		output.WriteString(methodStyle(path.Method).Render(path.Method))
		if path.Summary != "" {
			output.WriteString("  ")
			output.WriteString(summaryStyle.Render(path.Summary))
		}
		output.WriteString("\n")
	}

	return output.String()
}

func firstSentence(text string) string {
	if idx := strings.Index(text, ". "); idx > 0 {
		return text[:idx+1]
	}
	return text
}

// RenderOperation shows one operation with its inputs and responses
func (d *Displayer) RenderOperation(path PathInfo) string {
	var output strings.Builder

	fmt.Fprintf(&output, "%s %s\n\n", methodStyle(path.Method).Render(path.Method), pathStyle.Render(path.Path))

	if path.Summary != "" {
		output.WriteString(summaryStyle.Render(path.Summary))
		output.WriteString("\n")
	}
	if path.Description != "" {
		output.WriteString("\n")
		output.WriteString(path.Description)
		output.WriteString("\n")
	}

	if len(path.Parameters) > 0 {
		output.WriteString(sectionStyle.Render("Parameters"))
		output.WriteString("\n")
		for _, param := range path.Parameters {
			output.WriteString(renderParameter(param))
		}
	}

	if path.RequestBody != nil {
		output.WriteString(sectionStyle.Render("Request Body"))
		output.WriteString("\n")
		output.WriteString(renderRequestBody(path.RequestBody))
	}

	if path.Responses != nil && path.Responses.Codes != nil {
		output.WriteString(sectionStyle.Render("Responses"))
		output.WriteString("\n")
		for code, response := range path.Responses.Codes.FromOldest() {
			output.WriteString(renderResponse(code, response))
		}
	}

	return boxStyle.Render(strings.TrimRight(output.String(), "\n"))
}

func renderParameter(param *v3.Parameter) string {
	var output strings.Builder

	fmt.Fprintf(&output, "  %s (%s)", paramStyle.Render(param.Name), param.In)
	if param.Required != nil && *param.Required {
		output.WriteString(" ")
		output.WriteString(requiredStyle.Render("*required"))
	}
	if param.Schema != nil {
		if schema := param.Schema.Schema(); schema != nil {
			output.WriteString(" ")
			output.WriteString(codeStyle.Render(typeName(schema)))
		}
	}
	output.WriteString("\n")

	if param.Description != "" {
		fmt.Fprintf(&output, "    %s\n", summaryStyle.Render(param.Description))
	}

	return output.String()
}

func renderRequestBody(body *v3.RequestBody) string {
	var output strings.Builder

	if body.Required != nil && *body.Required {
		output.WriteString("  ")
		output.WriteString(requiredStyle.Render("*required"))
		output.WriteString("\n")
	}

	if body.Content != nil {
		for contentType, media := range body.Content.FromOldest() {
			fmt.Fprintf(&output, "  %s\n", codeStyle.Render(contentType))
			if media.Schema != nil {
				output.WriteString(renderSchema(media.Schema.Schema(), 2))
			}
		}
	}

	return output.String()
}

func renderResponse(code string, response *v3.Response) string {
	var output strings.Builder

	fmt.Fprintf(&output, "  %s %s\n", statusStyle(code).Render(code), summaryStyle.Render(response.Description))

	if response.Content != nil {
		for contentType, media := range response.Content.FromOldest() {
			fmt.Fprintf(&output, "    %s\n", codeStyle.Render(contentType))
			if media.Schema != nil {
				output.WriteString(renderSchema(media.Schema.Schema(), 3))
			}
		}
	}

	return output.String()
}

// renderSchema prints an object as an annotated JSON example and any
// other type as its name and example
func renderSchema(schema *base.Schema, indent int) string {
	if schema == nil {
		return ""
	}
	pad := strings.Repeat("  ", indent)

	if typeName(schema) != "object" || schema.Properties == nil {
		line := pad + codeStyle.Render(typeName(schema))
		if example := exampleValue(schema); example != "" {
			line += " " + summaryStyle.Render("e.g. "+example)
		}
		if schema.Description != "" {
			line += " " + summaryStyle.Render("// "+schema.Description)
		}
		return line + "\n"
	}

	var output strings.Builder
	output.WriteString(pad + "{\n")

	count := 0
	for range schema.Properties.FromOldest() {
		count++
	}

	i := 0
	for name, proxy := range schema.Properties.FromOldest() {
		prop := proxy.Schema()
		line := fmt.Sprintf("%s  %q: %s", pad, name, exampleValue(prop))
		if i < count-1 {
			line += ","
		}
		if containsString(schema.Required, name) {
			line += " " + requiredStyle.Render("// required")
		}
		if prop != nil && prop.Description != "" {
			line += " " + summaryStyle.Render("// "+prop.Description)
		}
		output.WriteString(line + "\n")
		i++
	}

	output.WriteString(pad + "}\n")
	return output.String()
}

func typeName(schema *base.Schema) string {
	if len(schema.Type) == 0 {
		return "any"
	}
	if schema.Format != "" {
		return schema.Type[0] + "(" + schema.Format + ")"
	}
	return schema.Type[0]
}

// exampleValue renders a schema's example, first enum value, or a
// placeholder for its type as a JSON literal
func exampleValue(schema *base.Schema) string {
	if schema == nil || len(schema.Type) == 0 {
		return "null"
	}

	literal := ""
	switch {
	case schema.Example != nil:
		literal = schema.Example.Value
	case len(schema.Enum) > 0 && schema.Enum[0] != nil:
		literal = schema.Enum[0].Value
	}

	switch schema.Type[0] {
	case "string":
		if literal == "" {
			literal = "string"
		}
		return fmt.Sprintf("%q", literal)
	case "integer":
		if literal == "" {
			literal = "1"
		}
		return literal
	case "number":
		if literal == "" {
			literal = "1.5"
		}
		return literal
	case "boolean":
		if literal == "" {
			literal = "true"
		}
		return literal
	case "array":
		return "[]"
	case "object":
		return "{}"
	}
	return "null"
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
