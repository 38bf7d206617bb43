package synthesis

import "fmt"

// template is the static narrative backing one workflow type: the step
// outline, the repetitive actions worth calling out, and the automation
// advice surfaced to the user.
type template struct {
	describe          func(interactions int) string
	steps             []string
	complexSteps      []string // appended for complex and very_complex sessions
	repetitiveActions []string
	opportunities     []string
	tools             []string
	savingsDivisor    int // duration/savingsDivisor per execution
}

var templates = map[string]template{
	"excel_operations": {
		describe: func(n int) string {
			return fmt.Sprintf("Excel spreadsheet workflow with %d interactions", n)
		},
		steps: []string{
			"Open Excel application",
			"Navigate to spreadsheet",
			"Select cells or data range",
			"Perform operations (edit, format, calculate)",
			"Save spreadsheet",
		},
		complexSteps: []string{
			"Apply formulas or functions",
			"Create charts or graphs",
			"Sort or filter data",
		},
		repetitiveActions: []string{"Cell selection", "Data entry", "Formula application", "Formatting"},
		opportunities: []string{
			"Automated data entry from external sources",
			"Formula generation and application",
			"Data validation and cleaning",
		},
		tools: []string{
			"Python pandas for data processing",
			"Excel VBA macros",
			"Power Query for data transformation",
		},
		savingsDivisor: 3,
	},
	"data_entry": {
		describe: func(n int) string {
			return fmt.Sprintf("Data entry workflow with %d form interactions", n)
		},
		steps: []string{
			"Open data entry form or application",
			"Navigate to input fields",
			"Enter data systematically",
			"Validate entered information",
			"Submit or save data",
		},
		repetitiveActions: []string{"Field navigation", "Data typing", "Form submission", "Validation"},
		opportunities: []string{
			"Automated form filling from a database",
			"Data validation scripts",
			"Batch data entry processing",
		},
		tools: []string{
			"Selenium WebDriver for web forms",
			"Python pandas for data processing",
			"Desktop automation tooling",
		},
		savingsDivisor: 2,
	},
	"file_management": {
		describe: func(n int) string {
			return fmt.Sprintf("File management workflow with %d file operations", n)
		},
		steps: []string{
			"Navigate to source directory",
			"Select files for processing",
			"Apply file operations (copy, move, rename)",
			"Organize files in destination",
		},
		repetitiveActions: []string{"File selection", "Directory navigation", "File operations"},
		opportunities: []string{
			"Batch file processing scripts",
			"Automated file organization",
			"Duplicate detection and removal",
		},
		tools: []string{
			"Shell scripts for batch operations",
			"Python pathlib for file handling",
		},
		savingsDivisor: 4,
	},
	"word_operations": {
		describe: func(n int) string {
			return fmt.Sprintf("Document processing workflow with %d text interactions", n)
		},
		steps: []string{
			"Open word processor",
			"Enter or edit text content",
			"Apply formatting and styling",
			"Save document",
		},
		repetitiveActions: []string{"Text entry", "Formatting", "Save operations"},
		opportunities: []string{
			"Document templates and macros",
			"Auto-formatting with styles",
			"Mail merge for bulk documents",
		},
		tools: []string{
			"Word macros and templates",
			"Python document libraries",
		},
		savingsDivisor: 5,
	},
}

// specificFallback covers detected categories without a dedicated template.
func specificFallback(workflowType string) template {
	return template{
		describe: func(n int) string {
			return fmt.Sprintf("%s workflow with %d interactions", workflowType, n)
		},
		steps: []string{
			"Open the relevant application",
			"Perform the detected task repeatedly",
			"Review and save results",
		},
		repetitiveActions: []string{"Repeated task execution", "Application navigation"},
		opportunities: []string{
			"Automate the recurring task sequence",
			"Create shortcuts for frequent actions",
		},
		tools: []string{
			"Task automation tools",
			"Custom scripts",
		},
		savingsDivisor: 4,
	}
}

// generalTemplate varies with the measured activity level because no
// specific category evidence exists to narrate from.
func generalTemplate(interactions int) template {
	switch {
	case interactions > 30:
		return template{
			describe: func(n int) string {
				return fmt.Sprintf("High-activity computer workflow with %d interactions", n)
			},
			steps: []string{
				"User performed extensive computer activity",
				"Multiple applications or tasks were used",
				"Complex workflow with many steps",
				"Potential for automation analysis",
			},
			repetitiveActions: []string{"Multiple application usage", "Complex task execution", "Navigation patterns"},
			opportunities: []string{
				"Identify repetitive patterns in the workflow",
				"Automate common task sequences",
				"Create workflow templates",
			},
			tools:          []string{"Process mapping software", "RPA tools for automation"},
			savingsDivisor: 4,
		}
	case interactions > 15:
		return template{
			describe: func(n int) string {
				return fmt.Sprintf("Moderate-activity computer workflow with %d interactions", n)
			},
			steps: []string{
				"User performed computer tasks",
				"Multiple interactions captured",
				"Workflow with several steps",
				"Review for automation opportunities",
			},
			repetitiveActions: []string{"Application usage", "Task execution", "Navigation"},
			opportunities: []string{
				"Streamline common tasks",
				"Create shortcuts for frequent actions",
			},
			tools:          []string{"Task automation tools", "Keyboard shortcuts"},
			savingsDivisor: 5,
		}
	default:
		return template{
			describe: func(n int) string {
				return fmt.Sprintf("Basic activity detected with %d interactions", n)
			},
			steps: []string{
				"User performed basic computer tasks",
				"Limited activity captured",
				"Consider recording longer sessions for better analysis",
			},
			repetitiveActions: []string{"Basic computer usage"},
			opportunities: []string{
				"Document common tasks",
				"Identify improvement opportunities",
			},
			tools:          []string{"Process documentation tools"},
			savingsDivisor: 0,
		}
	}
}

func templateFor(workflowType string, interactions int) template {
	if workflowType == "" || workflowType == "general" {
		return generalTemplate(interactions)
	}
	if t, ok := templates[workflowType]; ok {
		return t
	}
	return specificFallback(workflowType)
}
