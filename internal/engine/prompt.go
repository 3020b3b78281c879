package engine

// LLM prompt templates: data only, no logic.

// summaryPrompt asks for a markdown summary of a transcript.
// Args: transcript text.
const summaryPrompt = `Please create a comprehensive and well-structured summary of this YouTube video transcript.

Format your response in markdown with:
- A brief overview paragraph (2-3 sentences)
- **Key Points** section with bullet points of main topics
- **Important Insights** section highlighting key takeaways
- **Main Topics Covered** as a bulleted list

Keep the summary concise but informative, focusing on the most valuable content.

Transcript:
%s`

// notCoveredAnswer is what the model is told to say when the transcript lacks the answer.
const notCoveredAnswer = "This information is not covered in the video"

// answerPrompt grounds a question in a transcript.
// Args: transcript text, question.
const answerPrompt = `Based on the following video transcript, please answer the user's question accurately and concisely.

Instructions:
- Answer only based on the information provided in the transcript
- If the answer is not in the transcript, say "` + notCoveredAnswer + `"
- Provide specific details when available
- Keep the answer focused and relevant to the question

Video Transcript:
%s

User Question: %s

Answer:`
