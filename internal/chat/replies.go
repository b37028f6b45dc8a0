package chat

// Reply texts sent to guests over the chat channel.
const (
	startReply = "Hello! I am Reviewer ⭐️ and I am offering discounts and rewards for your honest opinion! 🗣️\n\n" +
		"Just send me a Voice Note 🎙  or just text with your comments what did you like or did not like about this place and get a guaranteed reward 🏆\n\n" +
		"Press the microphone and speak in your native language 💬"

	attachmentDenied = "Sorry, I can accept only text or Voice Notes 🎙"
	filetypeDenied   = "Sorry, I can accept only text or Voice Notes 🎙 This filetype is not supported: "

	reviewAccepted = "Thank you for your feedback! ❤️ \n\nGive me some time to analize your review. 🫶🏼"

	transcriptionError = "Sorry, there was a problem with transcribing your review. Could you please try again?"
	uploadError        = "Sorry, there was a problem with saving your review. Could you please try again?"

	doneWithIssues = "Here is the summary of the problems you have indicated. If you want to add more comments - please go ahead! \n\nKey points we should improve on: "
	doneNoIssues   = "We glad you have liked everythng so far. We will try our best to improve even more ❤️"
)
