package generation

import (
	"fmt"
	"strings"
)

const reviewMarker = "[[[REVIEW_SCHEME]]]"

func optimizerPrompt(raw string) string {
	return fmt.Sprintf(`You rewrite noisy user requests into compact search queries.

Rewrite the following request as a single short phrase or question suitable for retrieving relevant course material. Preserve every technical entity (library names, model names, algorithms); strip greetings, instructions, and filler.

Request: %q

Respond ONLY with the rewritten query.`, raw)
}

func metaPrompt(raw, context string, option Option) string {
	if option == OptionAssignment {
		return fmt.Sprintf(`You are an expert assignment designer for programming and coding assignments covering various domains like fullstack development and data science / AI in Python.

Given the raw input prompt: %q, and the following context from course materials:

=== Context ===
%s
=== End Context ===

Determine if this is a valid topic on which a detailed assignment can be made. Use the context to inform the assignment's scope, examples, or specific requirements (e.g., datasets, models, or techniques mentioned).

If valid, expand it into a structured assignment plan with sections like:
1. Introduction / Background
2. Task 1: Coding-based problem
3. Task 2: Analytical comparison
4. Expected output formats

Clearly mention sub-topics to cover, model types, variations, etc., incorporating relevant details from the context.

If it's a nonsense or fake prompt or if you are unsure and not confident about the prompt, respond with: "Invalid prompt: [reason]".

Respond ONLY with the structured assignment plan or invalid message.`, raw, context)
	}
	return fmt.Sprintf(`You are an expert educational content creator specializing in designing conceptual quizzes to test theoretical understanding in subjects like machine learning, AI, data science, and fullstack development.

Given the raw input topic: %q, and the following context from course materials:

=== Context ===
%s
=== End Context ===

Determine whether this is a valid and meaningful topic for a conceptual quiz. If valid, expand it into a structured quiz plan: which core concepts to test, how many questions of each kind, and what the context suggests about terminology and difficulty.

If the prompt is invalid or nonsensical, respond with: "Invalid prompt: [reason]".

Respond ONLY with the structured quiz plan or invalid message.`, raw, context)
}

func generationPrompt(plan string, option Option) string {
	if option == OptionAssignment {
		return fmt.Sprintf(`You are an AI assignment generator. Convert the following structured prompt into a markdown-based programming assignment.

For each coding task:
- Use markdown to describe the task.
- Add appropriate Python code cells with TODO brackets.
- Import necessary libraries.
- Initialize basic models or datasets.
- Ensure logical progression (with NO OVERLAP) from task to task.

Prompt:
%s

Return the assignment in plain text with clear separation between markdown and code blocks, using "`+"```python"+`" fences for code.`, plan)
	}
	return fmt.Sprintf(`You are an AI quiz generator. Convert the following structured quiz plan into a well-formatted, text-based quiz aimed at testing theoretical understanding of the topic.

Prompt:
%s

Generate the quiz with the following format:
1. ***Multiple Choice Questions (MCQs)***
   - List 3-5 MCQs with clear options (A, B, C, D) testing practical and theoretical understanding, MEDIUM difficulty.
2. ***True/False Questions***
   - List 2-3 T/F questions testing factual knowledge, MEDIUM difficulty.
3. ***Reasoning-Based or Short Answer Questions***
   - Ask 3-4 conceptual or comparative questions testing theoretical understanding, HARD difficulty.

Anything you want to be HIGHLIGHTED in the final file should be enclosed within 3 asterisks, example: ***MCQs***

DO NOT unnecessarily include other symbols in your text like double asterisks ** or ## signs. Only for formatting, use triple asterisks.

Return the quiz in plain text and write according to the instructions above.`, plan)
}

func redraftPrompt(draft, critique string, option Option) string {
	kind := "programming assignment"
	if option == OptionQuiz {
		kind = "conceptual quiz"
	}
	return fmt.Sprintf(`You are revising a %s. The current draft is below:
=====================
%s
=====================

A reviewer raised the following critique:
=====================
%s
=====================

Rewrite the draft so that EVERY point of the critique is fully addressed while keeping the existing structure and formatting conventions. Return only the revised content.`, kind, draft, critique)
}

func revisionPrompt(prior, humanFeedback string, option Option) string {
	kind := "programming assignment"
	if option == OptionQuiz {
		kind = "conceptual quiz"
	}
	return fmt.Sprintf(`You are revising a %s based on instructor feedback. The previous version is below:
=====================
%s
=====================

Instructor feedback:
=====================
%s
=====================

Apply the feedback faithfully. Keep everything the feedback does not ask to change. Return the full revised content in the same format as the previous version.`, kind, prior, humanFeedback)
}

func verificationPrompt(artifact, feedbackClause string, rubric Rubric) string {
	var scheme strings.Builder
	for i, c := range rubric.Criteria {
		if i > 0 {
			scheme.WriteString(", ")
		}
		fmt.Fprintf(&scheme, "'%s': %s_SCORE", c.Key, strings.ToUpper(c.Key))
	}
	return fmt.Sprintf(`You are reviewing generated educational content. The content is below:
=====================
%s
=====================

EVALUATE it STRICTLY. For each criterion below, give a score out of 10 and justify it with 1-2 sentences.

Criteria: %s.

Feedback incorporation: %s

At the end, write the following in one line ... %s = { %s }`,
		artifact,
		criterionList(rubric),
		feedbackClause,
		reviewMarker,
		scheme.String(),
	)
}

func criterionList(rubric Rubric) string {
	keys := make([]string, 0, len(rubric.Criteria))
	for _, c := range rubric.Criteria {
		keys = append(keys, c.Key)
	}
	return strings.Join(keys, ", ")
}

func feedbackClause(previous string) string {
	if previous == "" {
		return "This is the first draft so give full marks (10/10)."
	}
	return fmt.Sprintf("Feedback: %s. If the given feedback has NOT been FULLY incorporated, PENALIZE HARSHLY.", previous)
}

func extractPrompt(raw string) string {
	return fmt.Sprintf(`You validate topics for practice question generation.

Given the raw input: %q

Decide whether it names a real, teachable technical topic. If it does, respond with the topic restated as one compact phrase. If it is nonsense, empty, or not a study topic, respond with: "Invalid prompt: [reason]".

Respond ONLY with the compact topic or the invalid message.`, raw)
}

func qaPrompt(topic string, difficulty Difficulty, context string) string {
	ctxBlock := ""
	if context != "" {
		ctxBlock = fmt.Sprintf(`

Use the following context from course materials to ground the questions:

=== Context ===
%s
=== End Context ===`, context)
	}
	return fmt.Sprintf(`You are an AI tutor generating practice questions with answers.

Topic: %s
Difficulty: %s%s

Produce 6-8 practice questions on the topic at the stated difficulty, each immediately followed by a model answer of 1-4 sentences. Number the questions. Plain text only, no markdown symbols.`, topic, difficulty, ctxBlock)
}
