package update

const helpMarkdown = `# remindd

A task list that watches the clock for you. Tasks with a due date can
raise an advance reminder and a due notification; answer the prompt to
mark the task done, dismiss it, or snooze it for later.

## List

| key | action |
| --- | ------ |
| j/k | move selection |
| a   | add task |
| e   | edit task |
| d   | delete task |
| space / x | toggle complete |
| f   | cycle filter |
| s   | cycle sort order |
| ?   | toggle this help |
| q   | quit |

## Form

Tab moves between fields, left/right cycle the reminder offset and the
priority, enter saves, esc cancels. Due dates are entered in your local
time as ` + "`YYYY-MM-DD HH:MM`" + ` (time optional).

## Notifications

A prompt opens when a task fires. Snoozing hides it until the chosen
moment and then notifies again; dismissing keeps it quiet until the
task is edited or re-opened.
`
