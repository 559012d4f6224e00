package tui

import "fmt"

// Disclaimer is shown in the footer of every screen
const Disclaimer = "This is an educational tool and not a substitute for professional mental health care."

// AboutMarkdown returns the About page for a companion called name
func AboutMarkdown(name string) string {
	return fmt.Sprintf(`# About Pawsitive Mindset

Pawsitive Mindset was created to make mental health support accessible,
engaging, and stigma-free. Our friendly goldendoodle companion, %[1]s, is here to
guide you through your mental wellness journey with evidence-based techniques
and a supportive presence.

## Our Mission

We believe that small, consistent steps lead to meaningful change in mental
wellbeing. Through daily check-ins, practical tips, and progress tracking, we
aim to help you build resilience and develop healthy mental habits.

## Privacy & Safety

Your privacy matters. Your conversations with %[1]s never leave this machine;
transcripts are only written when you save them.

**Important Note:** While %[1]s is here to support you, %[1]s is not a
replacement for professional mental health care. If you're experiencing a
crisis or need immediate help, please contact a mental health professional or
crisis helpline.

## Our Approach

%[1]s combines elements from evidence-based approaches including:

- **Cognitive Behavioral Techniques** - Identifying and reshaping thought patterns
- **Mindfulness Practices** - Staying present and developing awareness
- **Positive Psychology** - Focusing on strengths and wellbeing

## Get Started Today

Begin your mental wellness journey with %[1]s. Check in daily, track your
progress, and build healthy mental habits one step at a time.
`, name)
}
