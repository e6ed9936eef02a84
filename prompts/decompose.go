// Package prompts holds the text sent to generative models.
package prompts

import "fmt"

// DecomposeTask asks for 3 to 5 actionable subtasks as {"subtasks": [...]}
const DecomposeTask = `Break down the following large task into 3 to 5 smaller, actionable sub-tasks. Task: "%s"

Provide the response as a JSON object with a single key "subtasks" which contains an array of strings. Example: {"subtasks": ["First sub-task", "Second sub-task"]}`

// Decompose renders DecomposeTask for text
func Decompose(text string) string {
	return fmt.Sprintf(DecomposeTask, text)
}
